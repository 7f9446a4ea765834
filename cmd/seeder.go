package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	tenantDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/tenant"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a tenant, an admin, a manager and an employee for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"leave_requests", "attendance_records", "profiles", "users", "tenants"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("Devpassword123!"), bcrypt.DefaultCost)

		tenantID := seedTenant(db, "Acme Corp", "acme")

		managerID := seedUser(db, "manager@acme.test", "Mandy Manager", string(hash))
		managerProfileID := seedProfile(db, managerID, tenantID, true, false, nil)

		adminID := seedUser(db, "admin@acme.test", "Andy Admin", string(hash))
		seedProfile(db, adminID, tenantID, false, true, nil)

		employeeID := seedUser(db, "employee@acme.test", "Emily Employee", string(hash))
		seedProfile(db, employeeID, tenantID, false, false, &managerProfileID)

		fmt.Println("Seeding complete. All passwords are 'Devpassword123!'")
	},
}

func seedTenant(db *gorm.DB, name, slug string) int64 {
	var existing tenantDatamodel.Tenant
	err := db.Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		fmt.Printf("tenant %s already exists\n", slug)
		return existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up tenant %s: %v", slug, err)
	}

	tenant := tenantDatamodel.Tenant{Name: name, Slug: slug}
	if err := db.Create(&tenant).Error; err != nil {
		log.Fatalf("failed to seed tenant %s: %v", slug, err)
	}
	fmt.Printf("Seeded tenant: %s\n", slug)
	return tenant.ID
}

func seedUser(db *gorm.DB, email, name, passwordHash string) int64 {
	var existing userDatamodel.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("user %s already exists\n", email)
		return existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up user %s: %v", email, err)
	}

	user := userDatamodel.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("Seeded user: %s\n", email)
	return user.ID
}

func seedProfile(db *gorm.DB, userID, tenantID int64, isManager, isTenantAdmin bool, managerProfileID *int64) int64 {
	var existing userDatamodel.Profile
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up profile for user %d: %v", userID, err)
	}

	profile := userDatamodel.Profile{
		UserID:          userID,
		TenantID:        &tenantID,
		IsManager:       isManager,
		IsTenantAdmin:   isTenantAdmin,
		IsEmailVerified: true,
		ManagerID:       managerProfileID,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("failed to seed profile for user %d: %v", userID, err)
	}
	return profile.ID
}
