package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WeeklyScheduleAssignedMailData struct {
	FullName     string `json:"fullName"`
	Year         int32  `json:"year"`
	WeekNumber   int32  `json:"weekNumber"`
	TemplateName string `json:"templateName"`
	CreatedBy    string `json:"createdBy"`
}

type TemplateAppliedMailData struct {
	FullName     string `json:"fullName"`
	TemplateName string `json:"templateName"`
	CreatedBy    string `json:"createdBy"`
}
