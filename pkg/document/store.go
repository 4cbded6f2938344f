package document

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/grovetools/jwtview/pkg/token"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is how long a decoded document stays cached.
const DefaultTTL = 10 * time.Minute

// Entry pairs a decoded token with its rendered document.
type Entry struct {
	Token    *token.Decoded
	Document *Document
}

// Store loads tokens from a source and memoizes the resulting documents by
// token content, so reloading an unchanged token skips decoding and
// classification.
type Store struct {
	cache  *cache.Cache
	logger *logrus.Entry
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl time.Duration, logger *logrus.Entry) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Load reads src and returns the document for its token. The second return
// value reports whether the entry came from the cache.
func (s *Store) Load(src token.Source) (*Entry, bool, error) {
	raw, err := src.Read()
	if err != nil {
		return nil, false, err
	}
	key := cacheKey(raw)
	if v, ok := s.cache.Get(key); ok {
		s.logger.WithField("source", src.Name()).Debug("Token unchanged, reusing document")
		return v.(*Entry), true, nil
	}

	decoded, err := token.Decode(raw)
	if err != nil {
		return nil, false, err
	}
	entry := &Entry{Token: decoded, Document: Build(decoded)}
	s.cache.SetDefault(key, entry)

	s.logger.WithFields(logrus.Fields{
		"source": src.Name(),
		"bytes":  entry.Document.Len(),
		"spans":  len(entry.Document.Spans()),
	}).Debug("Decoded token")
	return entry, false, nil
}

func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
