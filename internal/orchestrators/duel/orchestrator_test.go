package duel_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
	wizardsmock "github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards/mock"
	"github.com/KirkDiggler/rpg-arcana/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *wizardsmock.MockRepository
	now      time.Time
	svc      duel.Service
	ctx      context.Context

	confringo *spells.Attacking
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = wizardsmock.NewMockRepository(s.ctrl)
	s.now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	s.ctx = context.Background()

	svc, err := duel.NewOrchestrator(&duel.Config{
		Repository:  s.mockRepo,
		IDGenerator: idgen.NewSequential("wiz"),
		Picker:      random.NewFixed(0),
		Clock:       &clock.Fixed{At: s.now},
	})
	s.Require().NoError(err)
	s.svc = svc

	s.confringo = testutils.Confringo(s.T())
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectGet(data *wizard.Data) {
	s.mockRepo.EXPECT().
		Get(gomock.Any(), wizards.GetInput{ID: data.ID}).
		Return(&wizards.GetOutput{WizardData: data}, nil)
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	testCases := []struct {
		name   string
		config *duel.Config
		errMsg string
	}{
		{name: "nil config", config: nil, errMsg: "config cannot be nil"},
		{name: "missing repository", config: &duel.Config{IDGenerator: idgen.NewSequential("wiz"), Picker: random.NewFixed(), Clock: clock.New()}, errMsg: "Repository"},
		{name: "missing everything", config: &duel.Config{}, errMsg: "IDGenerator"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			svc, err := duel.NewOrchestrator(tc.config)
			s.Nil(svc)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *OrchestratorTestSuite) TestCreateWizard() {
	elixir := testutils.Elixir(s.T())

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input wizards.CreateInput) (*wizards.CreateOutput, error) {
			s.Equal("wiz_1", input.WizardData.ID)
			s.Equal("Harry", input.WizardData.Name)
			s.Equal("adept", input.WizardData.Level)
			s.Require().Len(input.WizardData.Inventory, 1)
			s.Equal(s.now, input.WizardData.CreatedAt)
			return &wizards.CreateOutput{WizardData: input.WizardData}, nil
		})

	out, err := s.svc.CreateWizard(s.ctx, &duel.CreateWizardInput{
		Name: "Harry", Level: magic.Adept, BaseHP: 100, HP: 100, BaseMP: 100, MP: 100, Capacity: 50,
		KnownSpells: []spells.Spell{s.confringo},
		Inventory:   []items.Item{elixir},
	})
	s.Require().NoError(err)
	s.Equal("wiz_1", out.Wizard.GetID())
	s.Equal(s.now, out.Wizard.CreatedAt())
}

func (s *OrchestratorTestSuite) TestCreateWizardInvalid() {
	_, err := s.svc.CreateWizard(s.ctx, &duel.CreateWizardInput{Name: "", Level: magic.Master, BaseMP: 10})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.CreateWizard(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateWizardAlreadyExists() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.AlreadyExists("wizard with ID wiz_1 already exists"))

	_, err := s.svc.CreateWizard(s.ctx, &duel.CreateWizardInput{Name: "Harry", Level: magic.Noob, BaseMP: 50})
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestGetWizardNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, wizards.GetInput{ID: "wiz_missing"}).
		Return(nil, errors.NotFound("wizard with ID wiz_missing not found"))

	_, err := s.svc.GetWizard(s.ctx, &duel.GetWizardInput{ID: "wiz_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestCastSpellPersistsBothParties() {
	harry := testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry", s.confringo)
	draco := testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco")
	s.expectGet(harry)
	s.expectGet(draco)

	var mu sync.Mutex
	saved := map[string]*wizard.Data{}
	s.mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input wizards.UpdateInput) (*wizards.UpdateOutput, error) {
			mu.Lock()
			defer mu.Unlock()
			saved[input.WizardData.ID] = input.WizardData
			return &wizards.UpdateOutput{WizardData: input.WizardData}, nil
		}).
		Times(2)

	out, err := s.svc.CastSpell(s.ctx, &duel.CastSpellInput{
		CasterID: "wiz_harry", TargetID: "wiz_draco", SpellID: "spell_confringo",
	})
	s.Require().NoError(err)
	s.True(out.Cast)
	s.Equal(90, out.Caster.MP())
	s.Equal(80, out.Target.HP())

	s.Require().Contains(saved, "wiz_harry")
	s.Require().Contains(saved, "wiz_draco")
	s.Equal(90, saved["wiz_harry"].MP)
	s.Equal(80, saved["wiz_draco"].HP)
	s.Equal(s.now, saved["wiz_draco"].UpdatedAt)
}

func (s *OrchestratorTestSuite) TestCastSpellOnSelfLoadsOnce() {
	harry := testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry", s.confringo)
	s.expectGet(harry)
	s.mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(&wizards.UpdateOutput{}, nil).
		Times(1)

	out, err := s.svc.CastSpell(s.ctx, &duel.CastSpellInput{
		CasterID: "wiz_harry", TargetID: "wiz_harry", SpellID: "spell_confringo",
	})
	s.Require().NoError(err)
	s.Same(out.Caster, out.Target)
	s.Equal(80, out.Caster.HP())
	s.Equal(90, out.Caster.MP())
}

func (s *OrchestratorTestSuite) TestCastUnknownSpell() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"))
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco"))

	_, err := s.svc.CastSpell(s.ctx, &duel.CastSpellInput{
		CasterID: "wiz_harry", TargetID: "wiz_draco", SpellID: "spell_confringo",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestCastSpellMissingTarget() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry", s.confringo))
	s.mockRepo.EXPECT().
		Get(gomock.Any(), wizards.GetInput{ID: "wiz_ghost"}).
		Return(nil, errors.NotFound("wizard with ID wiz_ghost not found"))

	_, err := s.svc.CastSpell(s.ctx, &duel.CastSpellInput{
		CasterID: "wiz_harry", TargetID: "wiz_ghost", SpellID: "spell_confringo",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSaveFailureIsReported() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry", s.confringo))
	s.mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("disk full"))

	_, err := s.svc.CastRandomSpell(s.ctx, &duel.CastRandomSpellInput{CasterID: "wiz_harry", TargetID: "wiz_harry"})
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestMissingIDs() {
	_, err := s.svc.Steal(s.ctx, &duel.StealInput{VictimID: "wiz_harry"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.GetWizard(s.ctx, &duel.GetWizardInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.DeleteWizard(s.ctx, &duel.DeleteWizardInput{})
	s.True(errors.IsInvalidArgument(err))
}

// carrying adds item to the inventory of a snapshot
func (s *OrchestratorTestSuite) carrying(data *wizard.Data, item items.Item) *wizard.Data {
	itemData, err := items.ToData(item)
	s.Require().NoError(err)
	data.Inventory = append(data.Inventory, itemData)
	return data
}

// recordUpdates expects times saves and collects the stored snapshots by ID
func (s *OrchestratorTestSuite) recordUpdates(times int) map[string]*wizard.Data {
	var mu sync.Mutex
	saved := map[string]*wizard.Data{}
	s.mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input wizards.UpdateInput) (*wizards.UpdateOutput, error) {
			mu.Lock()
			defer mu.Unlock()
			saved[input.WizardData.ID] = input.WizardData
			return &wizards.UpdateOutput{WizardData: input.WizardData}, nil
		}).
		Times(times)
	return saved
}

func (s *OrchestratorTestSuite) TestLearnSpell() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"))
	saved := s.recordUpdates(1)

	out, err := s.svc.LearnSpell(s.ctx, &duel.LearnSpellInput{WizardID: "wiz_harry", Spell: s.confringo})
	s.Require().NoError(err)
	s.True(out.Learned)
	_, known := out.Wizard.FindSpell(testutils.ConfringoID)
	s.True(known)

	s.Require().Contains(saved, "wiz_harry")
	s.Require().Len(saved["wiz_harry"].KnownSpells, 1)
	s.Equal(testutils.ConfringoID, saved["wiz_harry"].KnownSpells[0].ID)
}

func (s *OrchestratorTestSuite) TestForgetSpell() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry", s.confringo))
	saved := s.recordUpdates(1)

	out, err := s.svc.ForgetSpell(s.ctx, &duel.ForgetSpellInput{WizardID: "wiz_harry", SpellID: testutils.ConfringoID})
	s.Require().NoError(err)
	s.True(out.Forgotten)

	s.Require().Contains(saved, "wiz_harry")
	s.Empty(saved["wiz_harry"].KnownSpells)
}

func (s *OrchestratorTestSuite) TestForgetUnknownSpell() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"))

	_, err := s.svc.ForgetSpell(s.ctx, &duel.ForgetSpellInput{WizardID: "wiz_harry", SpellID: testutils.ConfringoID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	meta := errors.GetMeta(err)
	s.Equal("wiz_harry", meta["wizard_id"])
	s.Equal(testutils.ConfringoID, meta["spell_id"])
}

func (s *OrchestratorTestSuite) TestGiveItem() {
	s.expectGet(s.carrying(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"), testutils.Elixir(s.T())))
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco"))
	saved := s.recordUpdates(2)

	out, err := s.svc.GiveItem(s.ctx, &duel.GiveItemInput{
		GiverID: "wiz_harry", TakerID: "wiz_draco", ItemID: testutils.ElixirID,
	})
	s.Require().NoError(err)
	s.True(out.Given)
	s.Equal(10, out.Giver.Money())
	s.Equal(10, out.Taker.Money())

	s.Require().Contains(saved, "wiz_harry")
	s.Require().Contains(saved, "wiz_draco")
	s.Empty(saved["wiz_harry"].Inventory)
	s.Require().Len(saved["wiz_draco"].Inventory, 1)
	s.Equal(testutils.ElixirID, saved["wiz_draco"].Inventory[0].ID)
}

func (s *OrchestratorTestSuite) TestGiveItemToSelf() {
	s.expectGet(s.carrying(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"), testutils.Elixir(s.T())))

	_, err := s.svc.GiveItem(s.ctx, &duel.GiveItemInput{
		GiverID: "wiz_harry", TakerID: "wiz_harry", ItemID: testutils.ElixirID,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGiveUnknownItem() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"))
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco"))

	_, err := s.svc.GiveItem(s.ctx, &duel.GiveItemInput{
		GiverID: "wiz_harry", TakerID: "wiz_draco", ItemID: testutils.ElixirID,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	meta := errors.GetMeta(err)
	s.Equal("wiz_harry", meta["wizard_id"])
	s.Equal(testutils.ElixirID, meta["item_id"])
}

func (s *OrchestratorTestSuite) TestUseRandomItem() {
	harry := s.carrying(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"), testutils.Elixir(s.T()))
	harry.HP = 50
	s.expectGet(harry)
	saved := s.recordUpdates(1)

	out, err := s.svc.UseRandomItem(s.ctx, &duel.UseRandomItemInput{WizardID: "wiz_harry", TargetID: "wiz_harry"})
	s.Require().NoError(err)
	s.True(out.Used)
	s.Same(out.Wizard, out.Target)
	s.Equal(65, out.Wizard.HP())

	s.Require().Contains(saved, "wiz_harry")
	s.Equal(65, saved["wiz_harry"].HP)
}

func (s *OrchestratorTestSuite) TestSellRandomItem() {
	draco := testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco")
	draco.Money = 50
	s.expectGet(s.carrying(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"), testutils.Elixir(s.T())))
	s.expectGet(draco)
	saved := s.recordUpdates(2)

	out, err := s.svc.SellRandomItem(s.ctx, &duel.SellRandomItemInput{SellerID: "wiz_harry", BuyerID: "wiz_draco"})
	s.Require().NoError(err)
	s.True(out.Sold)
	s.Equal(30, out.Seller.Money())
	s.Equal(30, out.Buyer.Money())

	s.Require().Contains(saved, "wiz_harry")
	s.Require().Contains(saved, "wiz_draco")
	s.Empty(saved["wiz_harry"].Inventory)
	s.Require().Len(saved["wiz_draco"].Inventory, 1)
	s.Equal(30, saved["wiz_draco"].Money)
}

func (s *OrchestratorTestSuite) TestSellUnknownItem() {
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_harry", "Harry"))
	s.expectGet(testutils.NewWizardSnapshot(s.T(), "wiz_draco", "Draco"))

	_, err := s.svc.SellItem(s.ctx, &duel.SellItemInput{
		SellerID: "wiz_harry", BuyerID: "wiz_draco", ItemID: testutils.ElixirID,
	})
	s.True(errors.IsNotFound(err))
	s.Equal(testutils.ElixirID, errors.GetMeta(err)["item_id"])
}
