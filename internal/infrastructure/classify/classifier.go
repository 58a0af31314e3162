// Package classify maps installed applications to impact levels. The remote
// catalog is consulted first; static keyword lists are the silent fallback,
// so classification works identically with the network down.
package classify

import (
	"sort"
	"strings"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// Classifier implements ports.Classifier.
type Classifier struct {
	excluder *Excluder
	logger   ports.Logger
}

// NewClassifier builds a classifier with exclusion rules from the given file
// (built-in defaults when the path is empty or unreadable).
func NewClassifier(rulesFile string, log ports.Logger) (*Classifier, error) {
	excluder, err := NewExcluder(rulesFile)
	if err != nil {
		return nil, err
	}
	return &Classifier{excluder: excluder, logger: log}, nil
}

// Classify resolves one item. Excluded items carry no level; otherwise the
// result records which path produced the level.
func (c *Classifier) Classify(catalog domain.Catalog, packageID, displayName string) domain.Classification {
	if c.excluder.Excluded(packageID, displayName) {
		return domain.Classification{Excluded: true}
	}

	if catalog.Loaded() {
		if cls, ok := c.matchCatalog(catalog, packageID, displayName); ok {
			return cls
		}
	}

	return c.matchKeywords(packageID, displayName)
}

// domainToken pairs a domain map key with its leading token (the key up to
// the first dot).
type domainToken struct {
	key   string
	token string
}

// matchCatalog tests each known domain's leading token for substring
// containment against the package id and display name. Tokens are tried
// longest first, ties broken alphabetically, so overlapping tokens resolve
// deterministically.
func (c *Classifier) matchCatalog(catalog domain.Catalog, packageID, displayName string) (domain.Classification, bool) {
	id := strings.ToLower(packageID)
	name := strings.ToLower(displayName)

	tokens := make([]domainToken, 0, len(catalog.Domains))
	for key := range catalog.Domains {
		token := strings.ToLower(key)
		if dot := strings.IndexByte(token, '.'); dot > 0 {
			token = token[:dot]
		}
		if token == "" {
			continue
		}
		tokens = append(tokens, domainToken{key: key, token: token})
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i].token) != len(tokens[j].token) {
			return len(tokens[i].token) > len(tokens[j].token)
		}
		if tokens[i].token != tokens[j].token {
			return tokens[i].token < tokens[j].token
		}
		return tokens[i].key < tokens[j].key
	})

	for _, candidate := range tokens {
		if !strings.Contains(id, candidate.token) && !strings.Contains(name, candidate.token) {
			continue
		}
		category := catalog.Domains[candidate.key]
		record, ok := catalog.Categories[category]
		if !ok {
			continue
		}
		level, recognized := domain.ParseImpactLevel(record.Impact)
		if !recognized {
			c.logger.Warn("unrecognized impact string, defaulting to low", map[string]interface{}{
				"category": category,
				"impact":   record.Impact,
			})
		}
		return domain.Classification{
			Level:    level,
			Source:   domain.SourceRemote,
			Category: category,
		}, true
	}

	return domain.Classification{}, false
}

func (c *Classifier) matchKeywords(packageID, displayName string) domain.Classification {
	id := strings.ToLower(packageID)
	name := strings.ToLower(displayName)

	contains := func(keywords []string) bool {
		for _, keyword := range keywords {
			if strings.Contains(id, keyword) || strings.Contains(name, keyword) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(highImpactKeywords):
		return domain.Classification{Level: domain.ImpactHigh, Source: domain.SourceKeyword}
	case contains(mediumImpactKeywords):
		return domain.Classification{Level: domain.ImpactMedium, Source: domain.SourceKeyword}
	case contains(lowImpactKeywords):
		return domain.Classification{Level: domain.ImpactLow, Source: domain.SourceKeyword}
	default:
		return domain.Classification{Level: domain.ImpactLow, Source: domain.SourceDefault}
	}
}

var _ ports.Classifier = (*Classifier)(nil)
