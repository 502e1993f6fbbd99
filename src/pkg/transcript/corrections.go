package transcript

// Known OCR misreads of subject codes on the transcript scans.
var subjectCodeCorrections = map[string]string{
	"ZiIMABIOIT": "21MAB101T",
	"ZiCYBIOL":   "21CYB101L",
	"ZICSS1O1":   "21CSS101",
	"2ZIGNHIO1":  "21IGNH101",
	"2iMESi01L":  "21MES101L",
	"ZIGNMIO4L":  "21GNM104L",
	"21LEH1O4T":  "21LEH104T",
}

// Known OCR misreads of the grade column.
var gradeCorrections = map[string]string{
	"oO":  "O",
	"10)": "10",
	"At":  "A+",
	"Oo":  "O",
	"12)": "12",
	"©":   "O",
}

// CorrectSubjectCode returns the fixed code for a known misread, or code unchanged.
func CorrectSubjectCode(code string) string {
	return correctToken(subjectCodeCorrections, code)
}

// CorrectGrade returns the fixed grade for a known misread, or grade unchanged.
func CorrectGrade(grade string) string {
	return correctToken(gradeCorrections, grade)
}

// exact match only
func correctToken(table map[string]string, token string) string {
	if corrected, ok := table[token]; ok {
		return corrected
	}
	return token
}
