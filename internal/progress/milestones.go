package progress

type Milestone struct {
	Days        int    `json:"days"`
	Description string `json:"description"`
}

// HealthMilestones lists the benefits of consecutive smoke-free days.
var HealthMilestones = []Milestone{
	{Days: 1, Description: "Kadar karbon monoksida dalam darah kembali normal"},
	{Days: 2, Description: "Indra penciuman dan perasa mulai membaik"},
	{Days: 3, Description: "Napas terasa lebih lega"},
	{Days: 14, Description: "Sirkulasi darah membaik"},
	{Days: 30, Description: "Fungsi paru-paru meningkat"},
	{Days: 90, Description: "Batuk dan sesak napas berkurang"},
	{Days: 365, Description: "Risiko penyakit jantung koroner turun setengahnya"},
}

// Milestones returns the milestones reached after smokeFreeDays and the next
// one to aim for, or nil when all are reached.
func Milestones(smokeFreeDays int) (reached []Milestone, next *Milestone) {
	for i := range HealthMilestones {
		if smokeFreeDays >= HealthMilestones[i].Days {
			reached = append(reached, HealthMilestones[i])
			continue
		}
		m := HealthMilestones[i]
		next = &m
		break
	}
	return reached, next
}
