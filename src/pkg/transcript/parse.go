package transcript

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
ParseDocument runs the registration number, grade point and subject passes
over the full OCR text of a document.

Fields that were not found are logged as warnings; their values stay at the
sentinel / 0.0 so the spreadsheet output does not change shape.
*/
func ParseDocument(text string) (parsed Transcript) {
	parsed.RegistrationNumber, parsed.RegistrationNumberFound = findRegistrationNumber(text)
	parsed.SGPA, parsed.SGPAFound = findGradePoint(sgpaRegexp, text)
	parsed.CGPA, parsed.CGPAFound = findGradePoint(cgpaRegexp, text)
	parsed.Subjects = ExtractSubjects(text)

	if !parsed.RegistrationNumberFound {
		tl.Log(tl.Warning, palette.PurpleBold, "Registration number %s, using '%s'", "not found", UnknownRegistrationNumber)
	}
	if !parsed.SGPAFound {
		tl.Log(tl.Warning, palette.PurpleBold, "%s value %s, using %s", "SGPA", "not found", "0.0")
	}
	if !parsed.CGPAFound {
		tl.Log(tl.Warning, palette.PurpleBold, "%s value %s, using %s", "CGPA", "not found", "0.0")
	}

	tl.Log(
		tl.Info, palette.Cyan, "Parsed transcript '%s': %s subjects, SGPA %v, CGPA %v",
		parsed.RegistrationNumber, len(parsed.Subjects), parsed.SGPA, parsed.CGPA,
	)

	return parsed
}
