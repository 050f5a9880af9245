// Package docs embeds the documentation topics printed by 'dcf topic'.
//
// readme.md is the index: every other topic is listed there as a
// "* name: summary" line.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing the others.
const Index = "readme"

// Topic is an entry of the index.
type Topic struct {
	Name    string
	Summary string
}

var indexEntry = regexp.MustCompile(`^\*\s+([a-z0-9-]+):\s*(.*)$`)

// Topics returns the topics listed in the index, in order.
func Topics() ([]Topic, error) {
	content, err := docs.ReadFile(Index + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		if m := indexEntry.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: m[1], Summary: m[2]})
		}
	}
	return topics, scanner.Err()
}

// GetAllTopics returns the names of all embedded topics but the index, sorted.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if name := strings.TrimSuffix(file, ".md"); name != Index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// GetTopic returns the content of a topic.
//
// Names are case insensitive and may carry the .md extension. "*" is every
// topic, in index order.
func GetTopic(topic string) (string, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(topic)), ".md")
	if name == "*" {
		topics, err := Topics()
		if err != nil {
			return "", err
		}
		names := make([]string, 0, len(topics))
		for _, t := range topics {
			names = append(names, t.Name)
		}
		return GetTopics(names...)
	}
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		all, _ := GetAllTopics()
		return "", fmt.Errorf("topic %q not found, available topics: %s", topic, strings.Join(all, ", "))
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, separated by a blank line.
func GetTopics(topics ...string) (string, error) {
	parts := make([]string, 0, len(topics))
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(content, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
