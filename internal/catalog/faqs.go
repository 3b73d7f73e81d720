package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// FAQ is a help entry shown next to the simulators.
type FAQ struct {
	ID       int    `yaml:"id" json:"id"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

func newFAQs(list []FAQ) ([]FAQ, error) {
	seen := make(map[int]bool, len(list))
	out := make([]FAQ, 0, len(list))
	for _, f := range list {
		if f.ID <= 0 {
			return nil, fmt.Errorf("faq %q: id must be greater than 0", f.Question)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("duplicate faq id %d", f.ID)
		}
		seen[f.ID] = true
		f.Question = strings.TrimSpace(f.Question)
		f.Answer = strings.TrimSpace(f.Answer)
		if f.Question == "" || f.Answer == "" {
			return nil, fmt.Errorf("faq %d: question and answer are required", f.ID)
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FAQs lists help entries ordered by id.
func (c *Catalog) FAQs() []FAQ {
	return append([]FAQ(nil), c.faqs...)
}

func defaultFAQs() []FAQ {
	return []FAQ{
		{
			ID:       1,
			Question: "¿Cómo se calcula la cantidad de ladrillos?",
			Answer: "Se divide 1 m² entre el área de cada ladrillo más su junta (largo + junta) × (alto + junta), " +
				"se multiplica por el área del muro y se agrega 5% de desperdicio. El resultado se redondea hacia arriba.",
		},
		{
			ID:       2,
			Question: "¿Qué significa la proporción de mortero 1:5?",
			Answer: "Es una parte de cemento por cinco de arena en volumen. Por cada m³ de mortero se usan 7.4 bolsas " +
				"de cemento de 42.5 kg y 1.05 m³ de arena gruesa.",
		},
		{
			ID:       3,
			Question: "¿Por qué se agrega desperdicio al mortero?",
			Answer: "Durante el asentado se pierde mezcla por derrames y juntas irregulares. Se considera 10% adicional " +
				"sobre el volumen teórico.",
		},
		{
			ID:       4,
			Question: "¿Qué es un panel SIP?",
			Answer: "Un panel estructural aislado: dos placas OSB con núcleo de EPS. Reduce el costo a cerca del 67% " +
				"y el tiempo de obra a cerca del 38% del sistema tradicional.",
		},
		{
			ID:       5,
			Question: "¿Cómo se reparte el ahorro en la comparación?",
			Answer: "El ahorro total se atribuye 70% a la elección de material y 30% al sistema constructivo, y se " +
				"desglosa 82% en estructura y 18% en acabados. Son proporciones referenciales fijas.",
		},
		{
			ID:       6,
			Question: "¿El factor sísmico verifica la resistencia del muro?",
			Answer: "No. El factor sísmico se reporta siempre como 1.0 y no reemplaza el diseño estructural según la " +
				"norma E.070 de albañilería.",
		},
	}
}
