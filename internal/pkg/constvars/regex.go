package constvars

const (
	RegexDateYYYYMMDD = `^\d{4}-\d{2}-\d{2}$`
	RegexPatientCode  = `^PAT\d{6}\d{3}$`
	RegexNumeric      = `^\d+$`
)
