package classify

import (
	"context"
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/textutil"
)

// KeywordProvider is the offline default classifier. It scores each
// category by keyword hits over the normalized claim text and returns
// the best-scoring label, or an error when nothing matches so the
// router falls back to the central authority.
type KeywordProvider struct {
	keywords map[string][]string
}

// NewKeywordProvider creates the keyword classifier.
func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{
		keywords: map[string][]string{
			LabelInformatics: {
				"internet", "computadora", "computadoras", "red", "wifi",
				"impresora", "proyector", "sistema", "correo", "software",
				"pantalla", "teclado", "mouse", "laboratorio", "servidor",
				"pagina", "plataforma", "campus",
			},
			LabelMaintenance: {
				"limpieza", "bano", "banos", "luz", "luces", "puerta",
				"ventana", "aire", "acondicionado", "banco", "bancos",
				"pared", "agua", "techo", "piso", "silla", "sillas",
				"calefaccion", "enchufe", "persiana", "canilla",
			},
			LabelCentralSecretary: {
				"tramite", "tramites", "certificado", "inscripcion",
				"constancia", "expediente", "titulo", "legalizacion",
				"administrativo", "secretaria",
			},
		},
	}
}

// Name returns the provider name.
func (p *KeywordProvider) Name() string {
	return "keyword"
}

// IsAvailable always reports true; the keyword table is built in.
func (p *KeywordProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Classify scores each category by keyword hits and returns the best
// match.
func (p *KeywordProvider) Classify(ctx context.Context, text string) (string, error) {
	tokens := textutil.Tokenize(textutil.Normalize(text))
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	best := ""
	bestScore := 0
	for _, label := range Labels() {
		score := 0
		for _, kw := range p.keywords[label] {
			score += counts[kw]
		}
		if score > bestScore {
			best = label
			bestScore = score
		}
	}
	if best == "" {
		return "", fmt.Errorf("no keywords matched")
	}
	return best, nil
}
