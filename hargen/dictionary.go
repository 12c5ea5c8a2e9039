package hargen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"unicode"
)

// fallback word list for when /usr/share/dict/words doesn't exist (windows, containers)
var fallbackWords = []string{
	"user", "account", "order", "invoice", "product", "cart", "session",
	"profile", "avatar", "comment", "message", "thread", "channel", "team",
	"project", "task", "label", "release", "build", "deploy", "metric",
	"report", "search", "filter", "page", "cursor", "token", "viewer",
	"node", "edge", "schema", "field", "query", "mutation", "subscription",
	"status", "error", "success", "result", "payload", "event", "stream",
	"socket", "frame", "ping", "pong", "heartbeat", "presence", "typing",
	"price", "currency", "amount", "balance", "payment", "refund", "tax",
	"address", "city", "country", "region", "zone", "timezone", "locale",
	"feature", "flag", "variant", "experiment", "cohort", "segment",
	"upload", "download", "image", "thumbnail", "video", "audio", "file",
}

// Dictionary holds a list of words for random selection
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file, falling back to a built
// in list when the file does not exist.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return &Dictionary{words: fallbackWords}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())

		// graphql names must be plain identifiers
		if len(word) >= 3 && len(word) <= 15 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary")
	}
	return &Dictionary{words: words}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RandomWord returns a random word from the dictionary
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "word"
	}
	return d.words[rng.Intn(len(d.words))]
}

// RandomWords returns n random words from the dictionary
func (d *Dictionary) RandomWords(n int, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}
	result := make([]string, n)
	for i := range result {
		result[i] = d.RandomWord(rng)
	}
	return result
}

// OperationName returns a GraphQL style operation name such as GetUserProfile.
func (d *Dictionary) OperationName(rng *rand.Rand) string {
	verbs := []string{"Get", "List", "Update", "Create", "Delete", "Watch"}
	var b strings.Builder
	b.WriteString(verbs[rng.Intn(len(verbs))])
	for _, w := range d.RandomWords(rng.Intn(2)+1, rng) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Size returns the number of words in the dictionary
func (d *Dictionary) Size() int {
	return len(d.words)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
