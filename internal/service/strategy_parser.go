package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"mindfit/internal/domain"
)

// Limpieza y parseo robusto de respuestas del LLM. Los modelos devuelven
// JSON envuelto en fences, con BOM o con texto alrededor; acá se normaliza.

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	reStart := regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	reEnd := regexp.MustCompile("(?is)\\s*```\\s*$")
	s = reStart.ReplaceAllString(s, "")
	s = reEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto JSON balanceado del input,
// respetando strings y escapes; "" si no hay objeto completo.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}

// unmarshalLLMJSON intenta decodificar la respuesta cruda del LLM en out:
// primero el objeto extraído del texto limpio, luego el texto limpio entero,
// luego el crudo. Sin objeto parseable, la operación completa falla.
func unmarshalLLMJSON(raw string, out any) error {
	cleaned := cleanLLMJSONResponse(raw)

	candidates := make([]string, 0, 3)
	if obj := extractFirstJSONObject(cleaned); obj != "" {
		candidates = append(candidates, obj)
	} else if obj := extractFirstJSONObject(raw); obj != "" {
		candidates = append(candidates, obj)
	}
	if cleaned != "" {
		candidates = append(candidates, cleaned)
	}
	candidates = append(candidates, raw)

	var lastErr error
	for _, candidate := range candidates {
		if err := json.Unmarshal([]byte(candidate), out); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("no parseable JSON object in llm response: %w", lastErr)
}

// parseStrategyResult parsea la respuesta del estilista y valida los campos
// obligatorios del contrato. Un campo obligatorio ausente invalida todo.
func parseStrategyResult(raw string) (domain.StrategyResult, error) {
	var result domain.StrategyResult
	if err := unmarshalLLMJSON(raw, &result); err != nil {
		return domain.StrategyResult{}, err
	}

	missing := make([]string, 0, 6)
	if strings.TrimSpace(result.VibeTitle) == "" {
		missing = append(missing, "vibeTitle")
	}
	if strings.TrimSpace(result.MoodBoost) == "" {
		missing = append(missing, "moodBoost")
	}
	if strings.TrimSpace(result.PsychAnalysis) == "" {
		missing = append(missing, "psychAnalysis")
	}
	if strings.TrimSpace(result.StyleName) == "" {
		missing = append(missing, "styleName")
	}
	if strings.TrimSpace(result.KeyItem) == "" {
		missing = append(missing, "keyItem")
	}
	if len(result.HexColors) == 0 {
		missing = append(missing, "hexColors")
	}
	if len(missing) > 0 {
		return domain.StrategyResult{}, fmt.Errorf("strategy response missing required fields: %s", strings.Join(missing, ", "))
	}

	return result, nil
}
