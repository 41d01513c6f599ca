// Package interact decides, once per loaded scene, which mesh nodes react to
// the pointer and records the color each one must return to.
package interact

import (
	"strings"

	"roomview/internal/scenegraph"
)

// DefaultTags are the group name substrings that make a subtree interactive.
var DefaultTags = []string{"CHART_MY_WORK", "CHART_ABOUT", "CHART_CONTACT"}

// Logger receives the classification report.
type Logger interface {
	Infof(format string, args ...any)
}

// Interactive is a mesh node that reacts to the pointer.
type Interactive struct {
	Node *scenegraph.Node

	// Tag is the group tag found on the node or its nearest tagged ancestor.
	Tag string

	// Baseline is the color captured before any highlight touched the node.
	// It is nil when the node's material is not color-bearing.
	Baseline *scenegraph.Color
}

// Restore writes the baseline back into the node's live color. It reports
// whether anything was written.
func (it *Interactive) Restore() bool {
	if it.Baseline == nil || !it.Node.Material.HasColor() {
		return false
	}
	it.Node.Material.SetColor(*it.Baseline)
	return true
}

// Set is the ordered collection of interactive nodes of one scene. It is
// built by a Classifier and read-only afterwards.
type Set struct {
	items []*Interactive
	byID  map[scenegraph.ID]*Interactive
}

// Len returns the number of interactive nodes. A nil Set is empty.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the interactive nodes in traversal order. The slice must not
// be modified.
func (s *Set) Items() []*Interactive {
	if s == nil {
		return nil
	}
	return s.items
}

// Lookup returns the entry for n, if n is interactive.
func (s *Set) Lookup(n *scenegraph.Node) (*Interactive, bool) {
	if s == nil || n == nil {
		return nil, false
	}
	it, ok := s.byID[n.ID()]
	return it, ok
}

// Names returns the node names in traversal order.
func (s *Set) Names() []string {
	names := make([]string, 0, s.Len())
	for _, it := range s.Items() {
		names = append(names, it.Node.Name)
	}
	return names
}

// Classifier walks scene graphs and builds their Set. It remembers which
// nodes already received a private material and which baselines were taken,
// so classifying the same graph again neither re-clones nor re-captures.
type Classifier struct {
	tags []string
	log  Logger

	isolated  map[scenegraph.ID]struct{}
	baselines map[scenegraph.ID]scenegraph.Color
}

// NewClassifier returns a classifier matching the given tags. Empty tags
// are ignored. log may be nil.
func NewClassifier(tags []string, log Logger) *Classifier {
	c := &Classifier{
		log:       log,
		isolated:  make(map[scenegraph.ID]struct{}),
		baselines: make(map[scenegraph.ID]scenegraph.Color),
	}
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			c.tags = append(c.tags, t)
		}
	}
	return c
}

// Tags returns the tags the classifier matches, blanks removed.
func (c *Classifier) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Isolated reports whether n received a private material.
func (c *Classifier) Isolated(n *scenegraph.Node) bool {
	_, ok := c.isolated[n.ID()]
	return ok
}

// Classify visits every node under root once in pre-order. Each mesh node
// gets a private copy of its material. Mesh nodes whose name or any
// ancestor's name contains a tag are returned in the Set with their
// baseline color. A nil root yields an empty Set.
func (c *Classifier) Classify(root *scenegraph.Node) *Set {
	set := &Set{byID: make(map[scenegraph.ID]*Interactive)}
	if root != nil {
		root.Walk(func(n *scenegraph.Node) bool {
			if n.IsMesh() {
				c.visit(set, n)
			}
			return true
		})
	}
	c.report(set)
	return set
}

func (c *Classifier) visit(set *Set, n *scenegraph.Node) {
	tag, ok := c.match(n)
	if ok {
		c.capture(n)
	}
	c.isolate(n)
	if !ok {
		return
	}
	if _, dup := set.byID[n.ID()]; dup {
		return
	}
	it := &Interactive{Node: n, Tag: tag}
	if b, ok := c.baselines[n.ID()]; ok {
		it.Baseline = &b
	}
	set.items = append(set.items, it)
	set.byID[n.ID()] = it
}

// match returns the first tag contained in the name of n or its nearest
// ancestor carrying one.
func (c *Classifier) match(n *scenegraph.Node) (tag string, ok bool) {
	if len(c.tags) == 0 {
		return "", false
	}
	n.Lineage(func(a *scenegraph.Node) bool {
		for _, t := range c.tags {
			if strings.Contains(a.Name, t) {
				tag, ok = t, true
				return false
			}
		}
		return true
	})
	return tag, ok
}

// capture records the live color as the baseline the first time n is seen.
// It runs before isolation, which copies the color unchanged.
func (c *Classifier) capture(n *scenegraph.Node) {
	if _, done := c.baselines[n.ID()]; done {
		return
	}
	if !n.Material.HasColor() {
		return
	}
	c.baselines[n.ID()] = *n.Material.Color
}

func (c *Classifier) isolate(n *scenegraph.Node) {
	if _, done := c.isolated[n.ID()]; done {
		return
	}
	if n.Material != nil {
		n.Material = n.Material.Clone()
	}
	c.isolated[n.ID()] = struct{}{}
}

func (c *Classifier) report(set *Set) {
	if c.log == nil {
		return
	}
	c.log.Infof("Clickable meshes count: %d", set.Len())
	for _, it := range set.items {
		c.log.Infof("Clickable: %s", it.Node.Name)
	}
}
