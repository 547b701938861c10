// Package index maintains in-memory inverted indexes over a loaded
// traffic log using Roaring bitmaps, backing faceted search over
// logged requests.
package index

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/privlabel/internal/store"
	"github.com/usestring/privlabel/pkg/types"
)

// Index holds inverted indexes over the RequestEvents of one store.
// Built once from an immutable store; safe for concurrent reads.
type Index struct {
	docs []doc

	idxDomain     map[string]*roaring.Bitmap
	idxMethod     map[string]*roaring.Bitmap
	idxQueryType  map[string]*roaring.Bitmap
	idxHeaderName map[string]*roaring.Bitmap
	idxToken      map[string]*roaring.Bitmap
	all           *roaring.Bitmap
}

type doc struct {
	pos   int // event position in the store
	event *types.RequestEvent
}

// Match is one search hit: the request event and its position in the
// store's event sequence.
type Match struct {
	Pos   int                 `json:"pos"`
	Event *types.RequestEvent `json:"event"`
}

// Query filters requests by exact facets and free text. Empty fields
// match everything; Text tokens are ANDed.
type Query struct {
	Domain     string
	Method     string
	QueryType  string
	HeaderName string
	Text       string
}

// Build indexes the RequestEvents of st.
func Build(st *store.Store) *Index {
	ix := &Index{
		idxDomain:     make(map[string]*roaring.Bitmap),
		idxMethod:     make(map[string]*roaring.Bitmap),
		idxQueryType:  make(map[string]*roaring.Bitmap),
		idxHeaderName: make(map[string]*roaring.Bitmap),
		idxToken:      make(map[string]*roaring.Bitmap),
		all:           roaring.New(),
	}

	for pos, ev := range st.Events {
		req, ok := ev.(*types.RequestEvent)
		if !ok {
			continue
		}

		id := uint32(len(ix.docs))
		ix.docs = append(ix.docs, doc{pos: pos, event: req})
		ix.all.Add(id)

		ix.add(ix.idxDomain, strings.ToLower(req.Domain), id)
		ix.add(ix.idxMethod, strings.ToUpper(req.Method), id)
		if req.QueryType != "" {
			ix.add(ix.idxQueryType, strings.ToLower(req.QueryType), id)
		}
		for name := range req.Headers {
			ix.add(ix.idxHeaderName, strings.ToLower(name), id)
		}

		for _, token := range TokenizeURL(req.URL) {
			ix.add(ix.idxToken, token, id)
		}
		for _, token := range Tokenize(req.QueryText) {
			ix.add(ix.idxToken, token, id)
		}
	}

	return ix
}

// Len returns the number of indexed requests.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Domains returns the distinct lowercased domains in the index.
func (ix *Index) Domains() []string {
	out := make([]string, 0, len(ix.idxDomain))
	for d := range ix.idxDomain {
		out = append(out, d)
	}
	return out
}

// Search returns up to limit matches in log order. A limit <= 0 means
// no limit.
func (ix *Index) Search(q Query, limit int) []Match {
	result := ix.all.Clone()

	intersectFacet := func(idx map[string]*roaring.Bitmap, key string) {
		bm, ok := idx[key]
		if !ok {
			result.Clear()
			return
		}
		result.And(bm)
	}

	if q.Domain != "" {
		intersectFacet(ix.idxDomain, strings.ToLower(q.Domain))
	}
	if q.Method != "" {
		intersectFacet(ix.idxMethod, strings.ToUpper(q.Method))
	}
	if q.QueryType != "" {
		intersectFacet(ix.idxQueryType, strings.ToLower(q.QueryType))
	}
	if q.HeaderName != "" {
		intersectFacet(ix.idxHeaderName, strings.ToLower(q.HeaderName))
	}
	for _, token := range Tokenize(q.Text) {
		intersectFacet(ix.idxToken, token)
	}

	matches := make([]Match, 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		if limit > 0 && len(matches) >= limit {
			break
		}
		d := ix.docs[it.Next()]
		matches = append(matches, Match{Pos: d.pos, Event: d.event})
	}
	return matches
}

func (ix *Index) add(idx map[string]*roaring.Bitmap, key string, id uint32) {
	if key == "" {
		return
	}
	bm, ok := idx[key]
	if !ok {
		bm = roaring.New()
		idx[key] = bm
	}
	bm.Add(id)
}
