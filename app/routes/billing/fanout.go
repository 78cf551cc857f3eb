package billing

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"sas-admin/app/database"
	"sas-admin/app/models"
	"sas-admin/app/roster"
	"sas-admin/app/store"
)

var (
	errCampaignNotFound = errors.New("campaign not found")
	errNoTarget         = errors.New("campaign has no target")
)

// IssueResult reports the outcome of a campaign fan-out.
type IssueResult struct {
	Delivered    int `json:"delivered"`
	Skipped      int `json:"skipped"`
	Matched      int `json:"matched"`
	MissingPhone int `json:"missingPhone"`
}

// buildRoster assembles the roster the resolver matches against. The cached
// student profiles are preferred; when the cache is empty the canonical
// roster is used, with phones backfilled from the seat derivation so nobody
// is dropped for missing contact data.
func buildRoster(doc *models.Document, db *sql.DB) []roster.Entry {
	if len(doc.Profiles.Students) > 0 {
		entries := make([]roster.Entry, 0, len(doc.Profiles.Students))
		for _, s := range doc.Profiles.Students {
			entries = append(entries, roster.Entry{
				SeatID:  s.Roll,
				Name:    s.Name,
				Grade:   s.Grade,
				Section: s.Section,
				Phone:   s.FatherPhone,
			})
		}
		return entries
	}

	students, err := database.ActiveStudents(db)
	if err != nil {
		if !errors.Is(err, database.ErrUnavailable) {
			log.Printf("Failed to fetch canonical roster: %v", err)
		}
		return []roster.Entry{}
	}

	entries := make([]roster.Entry, 0, len(students))
	for _, s := range students {
		phone := s.ParentPhone.String
		if phone == "" {
			if grade, section, roll, ok := roster.ParseSeatID(s.USN); ok {
				if derived, ok := roster.SeatToPhone(grade, section, roll); ok {
					phone = derived
				}
			}
		}
		entries = append(entries, roster.Entry{
			SeatID:  s.USN,
			Name:    s.Name,
			Grade:   s.Grade,
			Section: s.Section,
			Phone:   phone,
		})
	}
	return entries
}

// issueCampaign fans a campaign out to its resolved recipients. One bill per
// (campaign, normalized phone) pair, ever: recipients already billed are
// skipped, and the whole operation aborts before any write when the target
// is ambiguous. All new bills land in a single store write.
func issueCampaign(st *store.Store, db *sql.DB, campaignID string) (IssueResult, error) {
	doc, err := st.Read()
	if err != nil {
		return IssueResult{}, err
	}
	campaign := doc.FindCampaign(campaignID)
	if campaign == nil {
		return IssueResult{}, errCampaignNotFound
	}
	if campaign.Target == nil {
		return IssueResult{}, errNoTarget
	}

	resolved, err := roster.Resolve(campaign.Target, buildRoster(doc, db))
	if err != nil {
		return IssueResult{}, err
	}

	result := IssueResult{Matched: len(resolved)}
	recipients := make([]roster.Entry, 0, len(resolved))
	for _, r := range resolved {
		if r.Phone == "" {
			result.MissingPhone++
			continue
		}
		recipients = append(recipients, r)
	}

	billed := billedPhones(doc.AdhocBills, campaign.ID)
	for _, r := range recipients {
		if billed[r.Phone] {
			result.Skipped++
		} else {
			result.Delivered++
		}
	}
	if result.Delivered == 0 {
		return result, nil
	}

	err = st.Write(func(d *models.Document) {
		// Recompute the dedup set against the re-read document; a bill added
		// between our read and this write must still not be duplicated.
		existing := billedPhones(d.AdhocBills, campaign.ID)
		now := time.Now()
		for _, r := range recipients {
			if existing[r.Phone] {
				continue
			}
			existing[r.Phone] = true
			d.AdhocBills = append(d.AdhocBills, models.AdhocBill{
				ID:          "adhoc_bill_" + uuid.NewString(),
				AdhocID:     campaign.ID,
				AppID:       r.SeatID,
				ParentPhone: r.Phone,
				Name:        r.Name,
				Title:       campaign.Title,
				Items:       append([]models.LineItem(nil), campaign.Items...),
				Total:       campaign.Total,
				CreatedAt:   now,
				Status:      models.BillUnpaid,
			})
		}
	})
	if err != nil {
		return IssueResult{}, err
	}
	return result, nil
}

func billedPhones(bills []models.AdhocBill, campaignID string) map[string]bool {
	billed := map[string]bool{}
	for _, b := range bills {
		if b.AdhocID == campaignID {
			billed[roster.NormalizePhone(b.ParentPhone)] = true
		}
	}
	return billed
}
