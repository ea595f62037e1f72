package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response       string
	VisionResponse string
	Err            error
	Prompts        []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}

func (m *MockClient) GenerateVision(ctx context.Context, prompt, imageBase64 string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.VisionResponse != "" || m.Err != nil {
		return m.VisionResponse, m.Err
	}
	return m.Response, m.Err
}
