/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package league resolves which league a match belongs to and maintains
// that league's standings table.
package league

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidIndex = errors.New("invalid league index")

// Index maps each league name to the players eligible to play in it. An
// Index is immutable once loaded.
type Index struct {
	// members in file order
	members map[string][]string
	sets    map[string]map[string]struct{}
}

// LoadIndex reads and validates the index file at path.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading league index: %w", err)
	}
	ix, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return ix, nil
}

// ParseIndex parses a league index. The document is a mapping from league
// name to its players, either as a list or as a set literal:
//
//	{'Kanto': ['alice', 'bob'], 'Johto': {'carol', 'dave'}}
//
// Block style YAML is accepted too. Empty leagues, blank or duplicate
// names and nested values are rejected.
func ParseIndex(data []byte) (*Index, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 ||
		doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidIndex)
	}
	root := doc.Content[0]

	ix := &Index{
		members: make(map[string][]string),
		sets:    make(map[string]map[string]struct{}),
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		name, err := scalarName(keyNode)
		if err != nil {
			return nil, fmt.Errorf("%w: league name: %v", ErrInvalidIndex, err)
		}
		if _, dup := ix.sets[name]; dup {
			return nil, fmt.Errorf("%w: league %q listed twice", ErrInvalidIndex,
				name)
		}

		players, err := leaguePlayers(valNode)
		if err != nil {
			return nil, fmt.Errorf("%w: league %q: %v", ErrInvalidIndex, name, err)
		}
		set := make(map[string]struct{}, len(players))
		for _, p := range players {
			if _, dup := set[p]; dup {
				return nil, fmt.Errorf("%w: league %q lists %q twice",
					ErrInvalidIndex, name, p)
			}
			set[p] = struct{}{}
		}
		ix.members[name] = players
		ix.sets[name] = set
	}

	if len(ix.sets) == 0 {
		return nil, fmt.Errorf("%w: no leagues defined", ErrInvalidIndex)
	}

	return ix, nil
}

func leaguePlayers(n *yaml.Node) ([]string, error) {
	var players []string
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			p, err := scalarName(item)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	case yaml.MappingNode:
		// a set literal {'a', 'b'} parses as a mapping with null values
		for i := 0; i+1 < len(n.Content); i += 2 {
			if v := n.Content[i+1]; v.Tag != "!!null" {
				return nil, fmt.Errorf("line %d: expected a list or set of players",
					v.Line)
			}
			p, err := scalarName(n.Content[i])
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	default:
		return nil, fmt.Errorf("line %d: expected a list or set of players",
			n.Line)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no players")
	}

	return players, nil
}

func scalarName(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", fmt.Errorf("line %d: expected a name", n.Line)
	}
	s := strings.TrimSpace(n.Value)
	if s == "" {
		return "", fmt.Errorf("line %d: blank name", n.Line)
	}
	return s, nil
}

// Leagues returns the league names in sorted order.
func (ix *Index) Leagues() []string {
	names := make([]string, 0, len(ix.sets))
	for name := range ix.sets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Members returns the players of league in index order, or nil if there is
// no such league.
func (ix *Index) Members(league string) []string {
	return append([]string(nil), ix.members[league]...)
}

// Contains reports whether username is eligible for league.
func (ix *Index) Contains(league string, username string) bool {
	_, ok := ix.sets[league][username]
	return ok
}

// Resolve returns the single league both players are eligible for. It fails
// with a *LeagueNotFoundError when there is no such league, and also when
// there is more than one.
func (ix *Index) Resolve(playerOne string, playerTwo string) (string, error) {
	var matches []string
	for _, name := range ix.Leagues() {
		if ix.Contains(name, playerOne) && ix.Contains(name, playerTwo) {
			matches = append(matches, name)
		}
	}
	if len(matches) != 1 {
		return "", &LeagueNotFoundError{
			PlayerOne:  playerOne,
			PlayerTwo:  playerTwo,
			Candidates: matches,
		}
	}

	return matches[0], nil
}
