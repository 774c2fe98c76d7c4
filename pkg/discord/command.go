package discord

import (
	"strings"
	"unicode"
)

// CommandArgs are the raw arguments of "<prefix><name> <date> <time> <description...>".
type CommandArgs struct {
	Date        string
	Time        string
	Description string
}

// Empty reports whether the command was given no arguments at all.
func (a CommandArgs) Empty() bool {
	return a.Date == "" && a.Time == "" && a.Description == ""
}

// ParseCommand matches content against prefix+name and splits its arguments.
// The description keeps its inner spacing; only surrounding whitespace is trimmed.
func ParseCommand(content, prefix, name string) (CommandArgs, bool) {
	content = strings.TrimLeftFunc(content, unicode.IsSpace)
	head := prefix + name
	if !strings.HasPrefix(content, head) {
		return CommandArgs{}, false
	}
	rest := content[len(head):]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		// "!schedules" is a different command.
		return CommandArgs{}, false
	}

	var args CommandArgs
	args.Date, rest = nextToken(rest)
	args.Time, rest = nextToken(rest)
	args.Description = strings.TrimSpace(rest)
	return args, true
}

func nextToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
