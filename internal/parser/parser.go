// Package parser extracts inline entity tokens from command-line task
// text: *Folder or *[Spaced Folder], @Context, $Goal and a !priority word.
// Whatever is left after stripping the tokens is the task title.
package parser

import (
	"regexp"
	"strings"

	"github.com/wsargent/toodledo/internal/domain"
)

var (
	folderPattern   = regexp.MustCompile(`\*((\w+)|\[(.*?)\])`)
	goalPattern     = regexp.MustCompile(`\$((\w+)|\[(.*?)\])`)
	contextPattern  = regexp.MustCompile(`@((\w+)|\[(.*?)\])`)
	priorityPattern = regexp.MustCompile(`!(top|high|medium|low|negative)`)
)

// Folder returns the folder name in the input, or "" when none is present.
func Folder(input string) string {
	return match(folderPattern, input)
}

// Goal returns the goal name in the input, or "".
func Goal(input string) string {
	return match(goalPattern, input)
}

// Context returns the context name in the input, or "".
func Context(input string) string {
	return match(contextPattern, input)
}

// Priority returns the priority named by a !word token. The second return
// is false when the input carries no priority token.
func Priority(input string) (domain.Priority, bool) {
	groups := priorityPattern.FindStringSubmatch(strings.ToLower(input))
	if groups == nil {
		return 0, false
	}
	priority, err := domain.ParsePriority(groups[1])
	if err != nil {
		return 0, false
	}
	return priority, true
}

// Remainder strips every recognized token from the line and trims the
// rest. This is the task title in an add command.
func Remainder(line string) string {
	for _, pattern := range []*regexp.Regexp{folderPattern, goalPattern, contextPattern, priorityPattern} {
		line = replaceFirst(pattern, line)
	}
	return strings.TrimSpace(line)
}

func match(pattern *regexp.Regexp, input string) string {
	groups := pattern.FindStringSubmatch(input)
	if groups == nil {
		return ""
	}
	return stripBrackets(groups[1])
}

// replaceFirst removes only the first occurrence, matching longstanding
// command-line behavior: a second token of the same kind stays in the title.
func replaceFirst(pattern *regexp.Regexp, input string) string {
	loc := pattern.FindStringIndex(input)
	if loc == nil {
		return input
	}
	return input[:loc[0]] + input[loc[1]:]
}

func stripBrackets(token string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(token)
}
