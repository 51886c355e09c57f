package wizards_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
	"github.com/KirkDiggler/rpg-arcana/internal/testutils"
)

// RepositoryContractSuite runs the same behaviour checks against every
// Repository implementation
type RepositoryContractSuite struct {
	suite.Suite
	newRepo func(t *testing.T) wizards.Repository

	repo wizards.Repository
	ctx  context.Context
}

func (s *RepositoryContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{
		newRepo: func(*testing.T) wizards.Repository { return wizards.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{
		newRepo: func(t *testing.T) wizards.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := wizards.NewRedis(&wizards.RedisConfig{Client: client, ListConcurrency: 2})
			require.NoError(t, err)
			return repo
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{
		newRepo: func(t *testing.T) wizards.Repository {
			path := filepath.Join(t.TempDir(), "arcana.db")
			repo, err := wizards.NewSQLite(context.Background(), &wizards.SQLiteConfig{Path: path})
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	data := testutils.NewWizardData("wiz_1", "Harry")

	_, err := s.repo.Create(s.ctx, wizards.CreateInput{WizardData: data})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_1"})
	s.Require().NoError(err)
	s.Equal(data.Name, out.WizardData.Name)
	s.Equal(data.HP, out.WizardData.HP)
	s.Equal(data.KnownSpells, out.WizardData.KnownSpells)
	s.Equal(data.ProtectedFrom, out.WizardData.ProtectedFrom)
	s.Require().Len(out.WizardData.Inventory, 1)
	s.Equal("item_scroll", out.WizardData.Inventory[0].ID)
	s.True(data.CreatedAt.Equal(out.WizardData.CreatedAt))

	restored, err := wizard.FromData(out.WizardData, nil)
	s.Require().NoError(err)
	s.Equal("Harry", restored.Name())
}

func (s *RepositoryContractSuite) TestGetReturnsACopy() {
	_, err := s.repo.Create(s.ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_1", "Harry")})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_1"})
	s.Require().NoError(err)
	out.WizardData.HP = 0

	again, err := s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_1"})
	s.Require().NoError(err)
	s.Equal(80, again.WizardData.HP)
}

func (s *RepositoryContractSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_1", "Harry")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_1", "Impostor")})
	s.True(errors.IsAlreadyExists(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestInvalidArguments() {
	_, err := s.repo.Create(s.ctx, wizards.CreateInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Create(s.ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("", "Nobody")})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Get(s.ctx, wizards.GetInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Update(s.ctx, wizards.UpdateInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Delete(s.ctx, wizards.DeleteInput{ID: " "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestNotFound() {
	_, err := s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_missing"})
	s.True(errors.IsNotFound(err))
	_, err = s.repo.Update(s.ctx, wizards.UpdateInput{WizardData: testutils.NewWizardData("wiz_missing", "Ghost")})
	s.True(errors.IsNotFound(err))
	_, err = s.repo.Delete(s.ctx, wizards.DeleteInput{ID: "wiz_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestUpdate() {
	data := testutils.NewWizardData("wiz_1", "Harry")
	_, err := s.repo.Create(s.ctx, wizards.CreateInput{WizardData: data})
	s.Require().NoError(err)

	data.HP = 12
	data.Money = 3
	data.Inventory = nil
	data.UpdatedAt = data.UpdatedAt.Add(time.Minute)
	_, err = s.repo.Update(s.ctx, wizards.UpdateInput{WizardData: data})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_1"})
	s.Require().NoError(err)
	s.Equal(12, out.WizardData.HP)
	s.Equal(3, out.WizardData.Money)
	s.Empty(out.WizardData.Inventory)
}

func (s *RepositoryContractSuite) TestDeleteAndList() {
	for _, data := range []*wizard.Data{
		testutils.NewWizardData("wiz_c", "Cedric"),
		testutils.NewWizardData("wiz_a", "Albus"),
		testutils.NewWizardData("wiz_b", "Bellatrix"),
	} {
		_, err := s.repo.Create(s.ctx, wizards.CreateInput{WizardData: data})
		s.Require().NoError(err)
	}

	_, err := s.repo.Delete(s.ctx, wizards.DeleteInput{ID: "wiz_b"})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, wizards.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Wizards, 2)
	s.Equal("wiz_a", out.Wizards[0].ID)
	s.Equal("wiz_c", out.Wizards[1].ID)

	_, err = s.repo.Get(s.ctx, wizards.GetInput{ID: "wiz_b"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, wizards.ListInput{})
	s.Require().NoError(err)
	s.NotNil(out.Wizards)
	s.Empty(out.Wizards)
}
