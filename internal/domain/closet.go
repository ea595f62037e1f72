package domain

import "strings"

// Category es la enumeración cerrada de categorías del closet.
type Category string

const (
	CategoryOuterwear   Category = "Outerwear"
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryAccessories Category = "Accessories"
)

// Categories lista las categorías válidas en orden de render.
func Categories() []Category {
	return []Category{CategoryOuterwear, CategoryTops, CategoryBottoms, CategoryAccessories}
}

// Valid reporta si la categoría pertenece a la enumeración.
func (c Category) Valid() bool {
	switch c {
	case CategoryOuterwear, CategoryTops, CategoryBottoms, CategoryAccessories:
		return true
	}
	return false
}

// ParseCategory valida una categoría recibida en el borde (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// ClosetItem es una prenda del inventario del usuario.
// El ID se deriva del timestamp de creación y es único dentro del inventario.
type ClosetItem struct {
	ID       int64    `json:"id"`
	Img      string   `json:"img"` // Base64 inline
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Desc     string   `json:"desc"`
}

// Summary renderiza la prenda como "color desc (categoria)" para el prompt.
func (i ClosetItem) Summary() string {
	return i.Color + " " + i.Desc + " (" + string(i.Category) + ")"
}

// FindClosetMatch busca una prenda cuya categoría coincida con la sugerida
// y cuyo color se solape como substring case-insensitive en cualquier dirección.
// Devuelve nil si cat o col vienen vacíos o no hay coincidencia.
func FindClosetMatch(closet []ClosetItem, cat, col string) *ClosetItem {
	if strings.TrimSpace(cat) == "" || strings.TrimSpace(col) == "" {
		return nil
	}
	want := strings.ToLower(strings.TrimSpace(col))
	for idx := range closet {
		it := &closet[idx]
		if string(it.Category) != cat {
			continue
		}
		have := strings.ToLower(it.Color)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return it
		}
	}
	return nil
}
