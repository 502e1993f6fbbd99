package transcript

import (
	"strings"
)

// A subject row needs semester, month/year, code, credit and grade at minimum.
const minSubjectTokens = 5

/*
ExtractSubjects decodes every qualifying line of text into a Subject.

Each line is split on whitespace. Lines with fewer than five tokens are
headers, blanks or noise and are skipped. Duplicate rows are kept as they
appear.
*/
func ExtractSubjects(text string) []Subject {
	subjects := make([]Subject, 0)

	for _, line := range strings.Split(text, "\n") {
		subject, ok := ParseSubjectLine(line)
		if !ok {
			continue
		}
		subjects = append(subjects, subject)
	}

	return subjects
}

/*
ParseSubjectLine decodes a single transcript row:

	<semester> <month/year> <code> <description ...> <credit> <grade>

The description is every token between the code and the credit, joined with
single spaces (it may be empty for a five-token line). Code and grade go
through the correction tables. ok is false when the line has too few tokens.
*/
func ParseSubjectLine(line string) (subject Subject, ok bool) {
	tokens := strings.Fields(line)
	if len(tokens) < minSubjectTokens {
		return Subject{}, false
	}

	creditIndex := len(tokens) - 2
	gradeIndex := len(tokens) - 1

	subject = Subject{
		Semester:    tokens[0],
		MonthYear:   tokens[1],
		Code:        CorrectSubjectCode(tokens[2]),
		Description: strings.Join(tokens[3:creditIndex], " "),
		Credit:      tokens[creditIndex],
		Grade:       CorrectGrade(tokens[gradeIndex]),
	}

	return subject, true
}
