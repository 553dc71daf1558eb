// Package tickindex provides an ordered multi-map from a tick value to the
// set of ids sharing that tick. Keys are kept in a sorted slice so range
// scans walk buckets in ascending key order.
package tickindex

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type bucket = map[string]struct{}

type Index[K constraints.Ordered] struct {
	keys    []K
	buckets map[K]bucket
}

func New[K constraints.Ordered]() *Index[K] {
	return &Index[K]{buckets: make(map[K]bucket)}
}

// Insert adds id to the bucket for key, creating the bucket if needed.
func (x *Index[K]) Insert(key K, id string) {
	b, ok := x.buckets[key]
	if !ok {
		b = make(bucket)
		x.buckets[key] = b
		i, _ := slices.BinarySearch(x.keys, key)
		x.keys = slices.Insert(x.keys, i, key)
	}
	b[id] = struct{}{}
}

// Remove deletes id from the bucket for key and drops the bucket once it is
// empty. It reports whether id was present.
func (x *Index[K]) Remove(key K, id string) bool {
	b, ok := x.buckets[key]
	if !ok {
		return false
	}
	if _, ok := b[id]; !ok {
		return false
	}
	delete(b, id)
	if len(b) == 0 {
		delete(x.buckets, key)
		if i, found := slices.BinarySearch(x.keys, key); found {
			x.keys = slices.Delete(x.keys, i, i+1)
		}
	}
	return true
}

func (x *Index[K]) Contains(key K, id string) bool {
	_, ok := x.buckets[key][id]
	return ok
}

// Len returns the number of non-empty buckets.
func (x *Index[K]) Len() int {
	return len(x.keys)
}

// Keys returns a copy of the bucket keys in ascending order.
func (x *Index[K]) Keys() []K {
	return slices.Clone(x.keys)
}

// Bucket returns the ids stored under key, sorted.
func (x *Index[K]) Bucket(key K) []string {
	b, ok := x.buckets[key]
	if !ok {
		return nil
	}
	ids := maps.Keys(b)
	slices.Sort(ids)
	return ids
}

// AscendRange calls fn for every id in buckets whose key lies in [lo, hi],
// visiting buckets in ascending key order. Ids within a bucket come in no
// particular order. Iteration stops early when fn returns false.
func (x *Index[K]) AscendRange(lo, hi K, fn func(key K, id string) bool) {
	if hi < lo {
		return
	}
	i, _ := slices.BinarySearch(x.keys, lo)
	for ; i < len(x.keys) && x.keys[i] <= hi; i++ {
		if !x.visit(x.keys[i], fn) {
			return
		}
	}
}

// AscendFrom is AscendRange without an upper bound.
func (x *Index[K]) AscendFrom(lo K, fn func(key K, id string) bool) {
	i, _ := slices.BinarySearch(x.keys, lo)
	for ; i < len(x.keys); i++ {
		if !x.visit(x.keys[i], fn) {
			return
		}
	}
}

func (x *Index[K]) visit(key K, fn func(K, string) bool) bool {
	for id := range x.buckets[key] {
		if !fn(key, id) {
			return false
		}
	}
	return true
}

func (x *Index[K]) Clear() {
	x.keys = x.keys[:0]
	x.buckets = make(map[K]bucket)
}
