package profiles

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"sas-admin/app/database"
	"sas-admin/app/models"
	"sas-admin/app/roster"
	"sas-admin/app/store"
)

// GetStudentsAPI returns the cached student roster.
func GetStudentsAPI(c *fiber.Ctx, st *store.Store) error {
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read students")
	}
	return c.JSON(fiber.Map{
		"students": doc.Profiles.Students,
		"count":    len(doc.Profiles.Students),
	})
}

type updateStudentRequest struct {
	Name         string `json:"name"`
	FatherPhone  string `json:"fatherPhone"`
	Grade        string `json:"grade"`
	Section      string `json:"section"`
	Roll         string `json:"roll"`
	PhotoDataURL string `json:"photoDataUrl"`
}

// UpdateStudentAPI updates a cached student profile addressed by its
// (name, fatherPhone) natural key. Profiles are never deleted here, only
// superseded in place.
func UpdateStudentAPI(c *fiber.Ctx, st *store.Store) error {
	var req updateStudentRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.FatherPhone == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing_fields"})
	}

	wantName := roster.NormalizeName(req.Name)
	wantPhone := roster.NormalizePhone(req.FatherPhone)

	found := false
	err := st.Write(func(d *models.Document) {
		for i := range d.Profiles.Students {
			s := &d.Profiles.Students[i]
			if roster.NormalizeName(s.Name) != wantName || roster.NormalizePhone(s.FatherPhone) != wantPhone {
				continue
			}
			found = true
			if req.Grade != "" {
				s.Grade = roster.CanonicalGrade(req.Grade)
			}
			if req.Section != "" {
				s.Section = req.Section
			}
			if req.Roll != "" {
				s.Roll = req.Roll
			}
			if req.PhotoDataURL != "" {
				s.PhotoDataURL = req.PhotoDataURL
			}
			return
		}
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}
	if !found {
		return c.Status(404).JSON(fiber.Map{"error": "not_found"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

type parentSignupRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ParentSignupAPI upserts a parent profile in the cache and, best-effort, in
// the canonical store. Passwords are stored bcrypt-hashed; a canonical outage
// only costs the canonical copy, not the signup.
func ParentSignupAPI(c *fiber.Ctx, st *store.Store, db *sql.DB) error {
	var req parentSignupRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Phone == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing_fields"})
	}

	phone := roster.NormalizePhone(req.Phone)
	if phone == "" {
		return c.Status(400).JSON(fiber.Map{"error": "invalid_phone"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process signup")
	}

	err = st.Write(func(d *models.Document) {
		for i := range d.Profiles.Parents {
			if roster.NormalizePhone(d.Profiles.Parents[i].Phone) == phone {
				d.Profiles.Parents[i].ParentName = req.Name
				d.Profiles.Parents[i].Password = string(hash)
				return
			}
		}
		d.Profiles.Parents = append(d.Profiles.Parents, models.ParentProfile{
			Phone:      phone,
			ParentName: req.Name,
			Password:   string(hash),
		})
		d.Parents = append(d.Parents, models.Parent{
			Phone:      phone,
			ParentName: req.Name,
			Password:   string(hash),
			CreatedAt:  time.Now(),
		})
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save signup")
	}

	if err := database.UpsertParent(db, req.Name, phone, req.Email); err != nil && !errors.Is(err, database.ErrUnavailable) {
		log.Printf("Canonical parent upsert deferred: %v", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
