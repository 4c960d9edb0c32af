package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/config"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/infrastructure/database"
)

const seedPassword = "password123"

func main() {
	logrus.Info("Seed starting")

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	doctors, err := seedDoctors(db, 10)
	if err != nil {
		logrus.Fatalf("Failed to seed doctors: %v", err)
	}
	if err := seedPatients(db, 50); err != nil {
		logrus.Fatalf("Failed to seed patients: %v", err)
	}
	if err := seedUsers(db, doctors); err != nil {
		logrus.Fatalf("Failed to seed users: %v", err)
	}

	logrus.Info("Seed complete")
}

func seedDoctors(db *gorm.DB, count int) ([]entity.Doctor, error) {
	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
	}

	doctors := make([]entity.Doctor, count)
	for i := range doctors {
		doctors[i] = entity.Doctor{
			Name:      fakeName(),
			Specialty: specialties[gofakeit.Number(0, len(specialties)-1)],
		}
	}

	if err := db.Create(&doctors).Error; err != nil {
		return nil, err
	}
	logrus.Infof("Seeded %d doctors", count)
	return doctors, nil
}

func seedPatients(db *gorm.DB, count int) error {
	patients := make([]entity.Patient, count)
	for i := range patients {
		patients[i] = entity.Patient{
			SocialSecurityNumber: fakeSSN(),
			FirstName:            gofakeit.FirstName(),
			LastName:             gofakeit.LastName(),
		}
	}

	if err := db.Create(&patients).Error; err != nil {
		return err
	}
	logrus.Infof("Seeded %d patients", count)
	return nil
}

// seedUsers creates one login per role so every endpoint can be exercised
// out of the box.
func seedUsers(db *gorm.DB, doctors []entity.Doctor) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []entity.User{
		{
			RoleID:               entity.RoleIDPatient,
			Username:             "patient1",
			Email:                "patient1@example.com",
			Password:             string(hashed),
			FirstName:            gofakeit.FirstName(),
			LastName:             gofakeit.LastName(),
			IDNumber:             fakeIDNumber(),
			SocialSecurityNumber: fakeSSN(),
		},
		{
			RoleID:    entity.RoleIDDoctor,
			Username:  "doctor1",
			Email:     "doctor1@example.com",
			Password:  string(hashed),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			IDNumber:  fakeIDNumber(),
			Specialty: doctors[0].Specialty,
		},
		{
			RoleID:    entity.RoleIDSecretary,
			Username:  "secretary1",
			Email:     "secretary1@example.com",
			Password:  string(hashed),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			IDNumber:  fakeIDNumber(),
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}
	logrus.Infof("Seeded %d users (password %q)", len(users), seedPassword)
	return nil
}

// fakeName keeps generated doctor names within the letters-and-spaces rule.
func fakeName() string {
	return fmt.Sprintf("%s %s", gofakeit.FirstName(), gofakeit.LastName())
}

func fakeSSN() string {
	digits := make([]byte, 11)
	for i := range digits {
		digits[i] = byte('0' + gofakeit.Number(0, 9))
	}
	return string(digits)
}

func fakeIDNumber() string {
	letters := strings.ToUpper(gofakeit.LetterN(2))
	return fmt.Sprintf("%s%06d", letters, gofakeit.Number(0, 999999))
}
