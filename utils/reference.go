package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// CreateReference returns a provider-correlatable reference of the form
// FX-<1000..9999>-<unix ms>.
func CreateReference() string {
	return fmt.Sprintf("FX-%d-%d", 1000+rand.Intn(9000), time.Now().UnixMilli())
}

// CreateReferences returns n distinct references.
func CreateReferences(n int) []string {
	seen := make(map[string]struct{}, n)
	refs := make([]string, 0, n)
	for len(refs) < n {
		ref := CreateReference()
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}
