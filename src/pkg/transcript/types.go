package transcript

// UnknownRegistrationNumber is reported when no "RA" + 9 digits token is found.
const UnknownRegistrationNumber = "UNKNOWN_REG_NO"

// Subject is one decoded transcript row.
type Subject struct {
	Semester    string `json:"semester"`
	MonthYear   string `json:"month_year"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Credit      string `json:"credit"`
	Grade       string `json:"grade"`
}

/*
Transcript is everything parsed out of one document.

RegistrationNumber, SGPA and CGPA always carry a usable value (the sentinel or
0.0 when nothing matched); the *Found flags tell a genuine zero apart from a
missing field.
*/
type Transcript struct {
	RegistrationNumber      string    `json:"registration_number"`
	RegistrationNumberFound bool      `json:"registration_number_found"`
	SGPA                    float64   `json:"sgpa"`
	SGPAFound               bool      `json:"sgpa_found"`
	CGPA                    float64   `json:"cgpa"`
	CGPAFound               bool      `json:"cgpa_found"`
	Subjects                []Subject `json:"subjects"`
}
