package textutil

// Spanish stopwords excluded from the similarity vector space and the
// word frequency analytics.
var stopwords = []string{
	"el", "la", "de", "en", "un", "una", "que", "es", "por", "con",
	"para", "del", "los", "las", "al", "se", "no", "su", "sus", "muy",
	"mas", "ya", "esta", "este", "estos", "estas", "estan", "eso", "esa",
	"esos", "esas", "fue", "fueron", "son", "ser", "sido", "tiene", "tienen",
	"hay", "han", "hemos", "puede", "pueden", "como", "pero", "sin", "sobre",
	"tambien", "entre", "cuando", "donde", "todo", "toda", "todos", "todas",
	"desde", "hasta", "hacia", "otro", "otra", "otros", "otras", "porque",
	"era", "eran", "habia", "habian", "mismo", "misma", "mismos", "mismas",
	"asi", "algo", "solo", "poco", "mucho", "muchos", "muchas", "cada",
	"vez", "bien", "mal", "aqui", "ahi", "alli", "ahora", "antes", "despues",
	"hoy", "ayer", "siempre", "nunca", "nada", "nadie", "ninguno", "ninguna",
	"nos", "les", "le", "me", "te", "lo", "esto", "unos", "unas",
}

var stopwordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopword reports whether the (already normalized) token is a
// stopword.
func IsStopword(token string) bool {
	_, ok := stopwordSet[token]
	return ok
}
