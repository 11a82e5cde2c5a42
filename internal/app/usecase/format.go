package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

// Reply texts of the WhatsApp bot.

const HelpText = `Perintah MyQuitZone:
#profil <jumlah/hari> kurangi [per minggu] - kurangi bertahap
#profil <jumlah/hari> berhenti [YYYY-MM-DD] - berhenti total
#lapor <jumlah> [perasaan] - catat rokok hari ini
#harga <rupiah> - harga satu batang
#statistik - progres, streak dan tabungan
#grafik [hari] - grafik target vs aktual
#manfaat - manfaat kesehatan yang sudah dicapai
#pengingat on|off [jam] - pengingat harian
#leaderboard - klasemen streak`

const (
	usageLapor     = "Format: #lapor <jumlah> [perasaan]\nContoh: #lapor 5 tenang"
	usageProfil    = "Format: #profil <jumlah/hari> kurangi [per minggu]\natau #profil <jumlah/hari> berhenti [YYYY-MM-DD]"
	usageHarga     = "Format: #harga <harga per batang>\nTitik pemisah ribuan, koma untuk desimal.\nContoh: #harga 1.500 atau #harga 0,65"
	usageGrafik    = "Format: #grafik [hari], maksimal 365 hari"
	usagePengingat = "Format: #pengingat on|off [jam 0-23]\nContoh: #pengingat on 20"
	noProfileText  = "Kamu belum punya profil. Mulai dengan #profil, ketik #bantuan untuk contoh."
)

func FormatLog(name string, res *LogResult) string {
	r := res.Record
	sb := strings.Builder{}
	if res.Updated {
		sb.WriteString(fmt.Sprintf("Catatan %s untuk %s diperbarui: %d batang.\n", name, r.Date, r.Actual))
	} else {
		sb.WriteString(fmt.Sprintf("Laporan diterima, %s: %d batang hari ini.\n", name, r.Actual))
	}

	switch {
	case r.Actual == 0:
		sb.WriteString("Hari bebas rokok! 🎉\n")
	case r.GoalMet:
		sb.WriteString(fmt.Sprintf("Target %d tercapai ✅\n", r.Goal))
	default:
		sb.WriteString(fmt.Sprintf("Melewati target %d batang, besok coba lagi ya 💪\n", r.Goal))
	}

	sb.WriteString(fmt.Sprintf("Streak: %d hari 🔥", res.Streak.Count))
	return sb.String()
}

func FormatProfile(p *domain.UserProfile) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Profil %s disimpan.\nRata-rata awal: %d batang/hari\n", displayName(p), p.DailyBaseline))
	switch p.Objective {
	case domain.ObjectiveReduce:
		sb.WriteString(fmt.Sprintf("Tujuan: kurangi %d batang setiap minggu", p.ReductionPerWeek))
	case domain.ObjectiveQuit:
		if p.TargetDate != nil {
			sb.WriteString(fmt.Sprintf("Tujuan: berhenti total mulai %s", domain.DateKey(*p.TargetDate)))
		} else {
			sb.WriteString("Tujuan: berhenti total mulai hari ini")
		}
	}
	return sb.String()
}

func FormatPrice(p *domain.UserProfile, currency string) string {
	return fmt.Sprintf("Harga per batang disimpan: %s", FormatMoney(p.CigarettePrice, currency))
}

func FormatProgress(r *ProgressReport) string {
	s := r.Summary
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Progres %s\n\n", displayName(&r.Profile)))

	if s.TodayRecorded {
		sb.WriteString(fmt.Sprintf("Hari ini: %d dari target %d\n", s.TodayActual, s.TodayGoal))
	} else {
		sb.WriteString(fmt.Sprintf("Target hari ini: %d batang (belum lapor)\n", s.TodayGoal))
	}

	sb.WriteString(fmt.Sprintf("Streak lapor: %d hari 🔥\n", s.ConnectionDays))
	sb.WriteString(fmt.Sprintf("Streak target: %d hari ✅\n", s.GoalStreak))
	sb.WriteString(fmt.Sprintf("Bebas rokok beruntun: %d hari\n\n", s.SmokeFreeRun))

	sb.WriteString(fmt.Sprintf("Total hari tercatat: %d (target tercapai %d)\n", s.TotalDays, s.GoalMetDays))
	sb.WriteString(fmt.Sprintf("Rata-rata: %.1f batang/hari\n", s.AveragePerDay))
	sb.WriteString(fmt.Sprintf("Rokok yang dihindari: %d batang\n", s.Avoided))
	sb.WriteString(fmt.Sprintf("Uang dihemat: %s\n\n", FormatMoney(s.Saved, r.Currency)))

	sb.WriteString(fmt.Sprintf("Tanaman: %s %s (%d%% dari %d hari)",
		growthIcon(r.Growth), growthLabel(r.Growth), int(math.Floor(r.GrowthProgress*100)), r.GrowthDays))
	return sb.String()
}

func FormatMilestones(r *ProgressReport) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Bebas rokok beruntun: %d hari\n", r.Summary.SmokeFreeRun))
	if len(r.Reached) == 0 {
		sb.WriteString("Belum ada manfaat yang tercapai, ayo mulai hari bebas rokok pertama!\n")
	}
	for _, m := range r.Reached {
		sb.WriteString(fmt.Sprintf("✅ %d hari: %s\n", m.Days, m.Description))
	}
	if r.NextMilestone != nil {
		left := r.NextMilestone.Days - r.Summary.SmokeFreeRun
		sb.WriteString(fmt.Sprintf("⏳ %d hari lagi: %s", left, r.NextMilestone.Description))
	} else {
		sb.WriteString("Semua manfaat sudah tercapai 🏆")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatChart renders the goal and actual series as an ASCII plot. Windows
// of two weeks or more also get a 7-day average of the actual values.
func FormatChart(c *ChartResult) string {
	s := c.Series
	if len(s.Dates) == 0 {
		return "Belum ada data untuk grafik."
	}

	caption := fmt.Sprintf("%s s/d %s: target vs aktual", s.Dates[0], s.Dates[len(s.Dates)-1])
	series := [][]float64{toFloats(s.Theoretical), toFloats(s.Actual)}
	if len(s.Actual) >= 14 {
		series = append(series, progress.MovingAverage(s.Actual, 7))
		caption += " vs rata-rata 7 hari"
	}

	opts := []asciigraph.Option{
		asciigraph.Height(8),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	}
	if len(s.Dates) > 60 {
		opts = append(opts, asciigraph.Width(60))
	}

	goalTotal, actualTotal := 0, 0
	for i := range s.Dates {
		goalTotal += s.Theoretical[i]
		actualTotal += s.Actual[i]
	}

	return fmt.Sprintf("```\n%s\n```\nTotal target: %d, total aktual: %d",
		asciigraph.PlotMany(series, opts...), goalTotal, actualTotal)
}

func FormatLeaderboard(b *Leaderboard) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Klasemen MyQuitZone (%s)\n\n", b.Date.Format("02-01-2006")))
	sb.WriteString(fmt.Sprintf("%d orang menjaga streak 🔥\n", len(b.Active)))
	sb.WriteString(fmt.Sprintf("%d orang kehilangan streak 💔\n", len(b.Lost)))

	if len(b.Active)+len(b.Lost) == 0 {
		sb.WriteString("\nBelum ada yang lapor. Jadi yang pertama dengan #lapor!")
		return sb.String()
	}

	sb.WriteString("\n")
	rank := 1
	for _, e := range b.Active {
		sb.WriteString(fmt.Sprintf("%d. %s - %d hari streak 🔥\n", rank, e.Name, e.Streak))
		rank++
	}
	for _, e := range b.Lost {
		sb.WriteString(fmt.Sprintf("%d. %s - terakhir lapor %s 💔\n", rank, e.Name, e.LastConnection))
		rank++
	}

	sb.WriteString("\nTetap semangat, satu hari satu langkah 💪")
	return sb.String()
}

func FormatSettings(s *domain.Settings) string {
	if !s.NotificationsEnabled {
		return "Pengingat harian dimatikan."
	}
	return fmt.Sprintf("Pengingat harian aktif setiap jam %02d:00.", s.ReminderHour)
}

func FormatReminder(p *domain.UserProfile, goal, streak int) string {
	msg := fmt.Sprintf("Halo %s, jangan lupa lapor hari ini ya. Target hari ini: %d batang.", displayName(p), goal)
	if streak > 0 {
		msg += fmt.Sprintf("\nStreak kamu %d hari, jangan sampai putus 🔥", streak)
	}
	return msg + "\nKetik #lapor <jumlah>"
}

// FormatMoney writes amount with Indonesian separators, e.g. "Rp 166.500"
// or "Rp 31,85". Cents are shown only when present.
func FormatMoney(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	s := groupThousands(cents / 100)
	if frac := cents % 100; frac != 0 {
		s += fmt.Sprintf(",%02d", frac)
	}
	return strings.TrimSpace(currency + " " + sign + s)
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sb := strings.Builder{}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func growthIcon(g progress.GrowthState) string {
	switch g {
	case progress.Sprout:
		return "🌱"
	case progress.SmallTree:
		return "🌿"
	case progress.Tree:
		return "🌳"
	default:
		return "🌰"
	}
}

func growthLabel(g progress.GrowthState) string {
	switch g {
	case progress.Sprout:
		return "tunas"
	case progress.SmallTree:
		return "pohon kecil"
	case progress.Tree:
		return "pohon"
	default:
		return "benih"
	}
}

func displayName(p *domain.UserProfile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.UserID
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
