package model

import (
	"strings"

	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

// PersonPredicate constrains the filtered person view.
type PersonPredicate = uniquelist.Predicate[models.Person]

// WeddingPredicate constrains the filtered wedding view.
type WeddingPredicate = uniquelist.Predicate[models.Wedding]

// ShowAllPersons matches every person; it is the default person predicate.
func ShowAllPersons(models.Person) bool { return true }

// ShowAllWeddings matches every wedding; it is the default wedding predicate.
func ShowAllWeddings(models.Wedding) bool { return true }

// TagContainsKeywords matches persons carrying a tag whose name word-matches
// any of the keywords, ignoring case.
func TagContainsKeywords(keywords []string) PersonPredicate {
	return func(p models.Person) bool {
		for _, t := range p.Tags {
			if containsWordIgnoreCase(t.Name, keywords) {
				return true
			}
		}
		return false
	}
}

// NameContainsKeywords matches persons whose name word-matches any keyword,
// ignoring case.
func NameContainsKeywords(keywords []string) PersonPredicate {
	return func(p models.Person) bool {
		return containsWordIgnoreCase(p.Name, keywords)
	}
}

// JobContainsKeywords matches persons whose job word-matches any keyword,
// ignoring case.
func JobContainsKeywords(keywords []string) PersonPredicate {
	return func(p models.Person) bool {
		return containsWordIgnoreCase(p.Job, keywords)
	}
}

// WeddingNameContainsKeywords matches weddings whose name word-matches any
// keyword, ignoring case.
func WeddingNameContainsKeywords(keywords []string) WeddingPredicate {
	return func(w models.Wedding) bool {
		return containsWordIgnoreCase(w.Name, keywords)
	}
}

// containsWordIgnoreCase reports whether any whitespace-separated word of
// sentence equals any keyword, ignoring case.
func containsWordIgnoreCase(sentence string, keywords []string) bool {
	for _, word := range strings.Fields(sentence) {
		for _, kw := range keywords {
			if strings.EqualFold(word, kw) {
				return true
			}
		}
	}
	return false
}
