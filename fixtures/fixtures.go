package fixtures

import (
	"fmt"
	"log"
	"math/rand"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	coreUtils "core/utils"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData creates a demo owner, their clan and a roster of players
// with randomized war records.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	user, err := f.createOwner("demo@example.com", "password")
	if err != nil {
		return fmt.Errorf("failed to create demo owner: %w", err)
	}

	clan, err := f.createClan(user.ID, "War Council")
	if err != nil {
		return fmt.Errorf("failed to create demo clan: %w", err)
	}

	names := []string{
		"BarbarianKing", "ArcherQueen", "GoblinGreed", "WallBreaker",
		"DragonRider", "HogLord", "ValkyrieStorm", "MinionMaster",
	}

	for _, name := range names {
		if err := f.createPlayer(clan.ID, name); err != nil {
			return fmt.Errorf("failed to create player %s: %w", name, err)
		}
	}

	log.Printf("Fixtures generated successfully! Created clan %q with %d players", clan.Name, len(names))
	log.Println("Demo login: demo@example.com / password")
	return nil
}

// ClearAllData wipes every table, dependents first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all data...")

	tables := []string{"players", "clans", "refresh_tokens", "users"}
	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	log.Println("All data cleared")
	return nil
}

func (f *Fixtures) createOwner(email, password string) (*authModels.User, error) {
	hashed, err := authUtils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &authModels.User{
		Email:    email,
		Password: hashed,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Fixtures) createClan(ownerID uint, name string) (*models.Clan, error) {
	clan := &models.Clan{
		Name:    name,
		Slug:    coreUtils.Slugify(name),
		OwnerID: ownerID,
	}
	if err := f.db.Create(clan).Error; err != nil {
		return nil, err
	}
	return clan, nil
}

func (f *Fixtures) createPlayer(clanID uint, name string) error {
	wars := make(models.Wars, models.WarCount)
	for i := range wars {
		wars[i] = models.WarSlot{
			AttackStars:  rand.Intn(models.MaxStars + 1),
			AttackPct:    rand.Intn(models.MaxPct + 1),
			DefenseStars: rand.Intn(models.MaxStars + 1),
			DefensePct:   rand.Intn(models.MaxPct + 1),
		}
	}

	player := &models.Player{
		ClanID: clanID,
		Name:   name,
		Wars:   wars,
	}
	return f.db.Create(player).Error
}
