package transcript

import (
	"regexp"
	"strconv"
)

// registrationNumberRegexp matches "RA" followed by exactly nine digits, e.g. "RA221100301".
var registrationNumberRegexp = regexp.MustCompile(`RA\d{9}`)

// sgpaRegexp and cgpaRegexp capture the number that follows the label after whitespace.
var (
	sgpaRegexp = regexp.MustCompile(`SGPA\s+([\d.]+)`)
	cgpaRegexp = regexp.MustCompile(`CGPA\s+([\d.]+)`)
)

/*
ExtractRegistrationNumber returns the first "RA" + 9 digits substring of text,
or UnknownRegistrationNumber when there is none.
*/
func ExtractRegistrationNumber(text string) string {
	regNo, _ := findRegistrationNumber(text)
	return regNo
}

func findRegistrationNumber(text string) (regNo string, found bool) {
	match := registrationNumberRegexp.FindString(text)
	if match == "" {
		return UnknownRegistrationNumber, false
	}
	return match, true
}

/*
ExtractGradePoints returns the first SGPA and CGPA values in text.
A missing label (or a value that is not a number, like "8..1") gives 0.0.
*/
func ExtractGradePoints(text string) (sgpa float64, cgpa float64) {
	sgpa, _ = findGradePoint(sgpaRegexp, text)
	cgpa, _ = findGradePoint(cgpaRegexp, text)
	return sgpa, cgpa
}

func findGradePoint(labelRegexp *regexp.Regexp, text string) (value float64, found bool) {
	m := labelRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0.0, false
	}

	value, parseErr := strconv.ParseFloat(m[1], 64)
	if parseErr != nil {
		return 0.0, false
	}

	return value, true
}
