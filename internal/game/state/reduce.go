package state

import (
	"slices"
	"time"

	"github.com/cory-johannsen/petsteps/internal/game/energy"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
)

// goalReward is what a met step goal pays out.
type goalReward struct {
	items  Consumables
	energy int
	xp     int
}

var (
	dailyReward  = goalReward{items: Consumables{Food: 1, Water: 1, Toy: 1}, energy: 1, xp: 500}
	weeklyReward = goalReward{items: Consumables{Food: 1, Water: 1, Toy: 1, Treat: 1, EnergyBoost: 1}, energy: 3, xp: 3000}
)

// Reduce applies a to s as of env.Now and returns the resulting state.
//
// Reduce never mutates s, never fails and never panics. An action whose
// preconditions do not hold returns s unchanged.
func Reduce(s GameState, a Action, env Env) GameState {
	next, _ := Apply(s, a, env)
	return next
}

// Apply is Reduce that also reports whether the action took effect.
//
// Postcondition: when changed is false the returned state is s.
func Apply(s GameState, a Action, env Env) (next GameState, changed bool) {
	switch a := a.(type) {
	case AddSteps:
		return addSteps(s, a.Steps, env)
	case AddXP:
		return addXP(s, a.Amount, env.Now)
	case FeedPet:
		return feed(s, env.Now)
	case WaterPet:
		return water(s, env.Now)
	case PlayWithPet:
		return play(s, env.Now)
	case GiveTreat:
		return treat(s, env.Now)
	case AddConsumable:
		return addConsumable(s, a)
	case CreatePet:
		return createPet(s, a, env)
	case StartTutorial:
		return startTutorial(s, env.Now)
	case EvolvePet:
		return evolve(s, a)
	case BreedPet:
		return breed(s, a, env.Now)
	case HatchEgg:
		return hatch(s, a, env)
	case RetirePet:
		if !s.HasLivePet() {
			return s, false
		}
		return retireActive(s, *s.ActivePet, env.Now), true
	case UpdateCareLevels:
		return updateCare(s, env.Now)
	case UseBattle:
		return useBattle(s, env.Now)
	case RechargeEnergy:
		b := energy.Recharge(s.BattleEnergy, env.Now)
		if b == s.BattleEnergy {
			return s, false
		}
		s.BattleEnergy = b
		return s, true
	case UseEnergyBoost:
		return useEnergyBoost(s, env.Now)
	case ClaimDailyGoal:
		return claimDaily(s, env.Now)
	case ClaimWeeklyGoal:
		return claimWeekly(s, env.Now)
	case SetSubscription:
		if !a.Tier.Valid() || a.Tier == s.SubscriptionTier {
			return s, false
		}
		s.SubscriptionTier = a.Tier
		s.AITokens = pet.AddCapped(s.AITokens, Tiers[a.Tier].AITokensPerMonth)
		return s, true
	case SetStepGoal:
		return setStepGoal(s, a.Daily)
	default:
		return s, false
	}
}

// rollSteps resets the day and week step counters when now falls on a new
// day or ISO week.
func rollSteps(s GameState, now time.Time) GameState {
	if day := energy.DayKey(now); s.StepDay != day {
		s.StepDay = day
		s.TodaySteps = 0
	}
	if week := energy.WeekKey(now); s.StepWeek != week {
		s.StepWeek = week
		s.WeeklySteps = 0
	}
	return s
}

func addSteps(s GameState, n int, env Env) (GameState, bool) {
	if n <= 0 {
		return s, false
	}
	n = min(n, MaxStepsPerAction)
	s = rollSteps(s, env.Now)
	s.TodaySteps = pet.AddCapped(s.TodaySteps, n)
	s.WeeklySteps = pet.AddCapped(s.WeeklySteps, n)
	s.TotalSteps = pet.AddCapped(s.TotalSteps, n)

	switch {
	case s.ActivePet != nil && s.ActivePet.ID == pet.TutorialID && !s.TutorialCompleted:
		s.TutorialSteps = pet.AddCapped(s.TutorialSteps, n)
		if s.TutorialSteps >= pet.TutorialStepsToRetire {
			p := *s.ActivePet
			p.Level = pet.RetirementLevel
			p.Experience = 0
			s = retireActive(s, p, env.Now)
		}
	case s.ActivePet == nil && s.Egg != nil:
		egg := s.Egg.Walk(n)
		s.Egg = &egg
	case s.HasLivePet():
		s, _ = addXP(s, n, env.Now)
	}
	return s, true
}

func addXP(s GameState, n int, now time.Time) (GameState, bool) {
	if n <= 0 || !s.HasLivePet() {
		return s, false
	}
	p := *s.ActivePet
	p.Experience = pet.AddCapped(p.Experience, n)
	for p.Level < pet.RetirementLevel && p.Experience >= pet.XPForLevel(p.Level) {
		p.Experience -= pet.XPForLevel(p.Level)
		p.Level++
		if stage := pet.EvolutionStageAt(p.Level); stage > p.EvolutionStage {
			p.EvolutionStage = stage
			s.EvolutionReady = true
		}
		if p.Level == pet.BreedingLevel {
			s.BreedingReady = true
		}
	}
	if p.Level >= pet.RetirementLevel {
		p.Level = pet.RetirementLevel
		p.Experience = 0
		return retireActive(s, p, now), true
	}
	s.ActivePet = &p
	return s, true
}

// retireActive moves p into history and clears the active slot. Flags raised
// for the retired pet no longer apply.
func retireActive(s GameState, p pet.Pet, now time.Time) GameState {
	p = pet.Retire(p, now)
	s.RetiredPets = append(slices.Clone(s.RetiredPets), p)
	s.ActivePet = nil
	s.EvolutionReady = false
	s.BreedingReady = false
	s.ChooseNewPet = true
	if p.ID == pet.TutorialID {
		s.TutorialCompleted = true
	}
	return s
}

func feed(s GameState, now time.Time) (GameState, bool) {
	if !s.HasLivePet() || s.Consumables.Food <= 0 {
		return s, false
	}
	p := *s.ActivePet
	p.Hunger = pet.ClampMeter(p.Hunger + pet.FeedAmount)
	p.LastFed = now
	s.ActivePet = &p
	s.Consumables.Food--
	return s, true
}

func water(s GameState, now time.Time) (GameState, bool) {
	if !s.HasLivePet() || s.Consumables.Water <= 0 {
		return s, false
	}
	p := *s.ActivePet
	p.Thirst = pet.ClampMeter(p.Thirst + pet.WaterAmount)
	p.LastWatered = now
	s.ActivePet = &p
	s.Consumables.Water--
	return s, true
}

func play(s GameState, now time.Time) (GameState, bool) {
	if !s.HasLivePet() {
		return s, false
	}
	p := *s.ActivePet
	p.Happiness = pet.ClampMeter(p.Happiness + pet.PlayAmount)
	p.LastPlayed = now
	s.ActivePet = &p
	return s, true
}

func treat(s GameState, now time.Time) (GameState, bool) {
	if !s.HasLivePet() || s.Consumables.Treat <= 0 {
		return s, false
	}
	p := *s.ActivePet
	p.Hunger = pet.ClampMeter(p.Hunger + pet.TreatAmount)
	p.Thirst = pet.ClampMeter(p.Thirst + pet.TreatAmount)
	p.Happiness = pet.ClampMeter(p.Happiness + pet.TreatAmount)
	p.LastFed, p.LastWatered, p.LastPlayed = now, now, now
	s.ActivePet = &p
	s.Consumables.Treat--
	return s, true
}

func addConsumable(s GameState, a AddConsumable) (GameState, bool) {
	if a.Amount <= 0 {
		return s, false
	}
	c, ok := s.Consumables.add(a.Item, a.Amount)
	if !ok {
		return s, false
	}
	s.Consumables = c
	return s, true
}

func createPet(s GameState, a CreatePet, env Env) (GameState, bool) {
	if s.ActivePet != nil || s.Egg != nil || !a.Element.Valid() || a.Name == "" {
		return s, false
	}
	p := pet.New(env.newID(), pet.Spec{
		Element:      a.Element,
		Name:         a.Name,
		IsTemplate:   a.IsTemplate,
		TemplateType: a.TemplateType,
		ImageURL:     a.ImageURL,
	}, env.source(), env.Now)
	s.ActivePet = &p
	s.ChooseNewPet = false
	s.TutorialCompleted = true
	return s, true
}

func startTutorial(s GameState, now time.Time) (GameState, bool) {
	if s.ActivePet != nil || s.Egg != nil || s.TutorialCompleted {
		return s, false
	}
	p := pet.Tutorial(now)
	s.ActivePet = &p
	s.TutorialSteps = 0
	return s, true
}

func evolve(s GameState, a EvolvePet) (GameState, bool) {
	if !s.EvolutionReady || !s.HasLivePet() {
		return s, false
	}
	p := pet.Evolve(*s.ActivePet, a.ImageURL, a.VisualUpdateAllowed)
	s.ActivePet = &p
	s.EvolutionReady = false
	return s, true
}

func breed(s GameState, a BreedPet, now time.Time) (GameState, bool) {
	if !s.HasLivePet() || s.ActivePet.Level < pet.BreedingLevel || s.Egg != nil || !a.PartnerElement.Valid() {
		return s, false
	}
	partner := pet.Partner{ID: a.PartnerID, Element: a.PartnerElement, Stats: a.PartnerStats}
	egg := pet.Breed(*s.ActivePet, partner, a.KeepSecondaryElement)
	s = retireActive(s, *s.ActivePet, now)
	s.Egg = &egg
	s.ChooseNewPet = false
	return s, true
}

func hatch(s GameState, a HatchEgg, env Env) (GameState, bool) {
	if s.Egg == nil || !s.Egg.HatchReady || s.ActivePet != nil || a.Name == "" {
		return s, false
	}
	p := pet.Hatch(*s.Egg, env.newID(), a.Name, a.ImageURL, env.Now)
	s.ActivePet = &p
	s.Egg = nil
	s.ChooseNewPet = false
	return s, true
}

func updateCare(s GameState, now time.Time) (GameState, bool) {
	if !s.HasLivePet() {
		return s, false
	}
	p := *s.ActivePet
	p.Hunger = pet.DecayedMeter(p.LastFed, now, pet.HungerDecayPerHour)
	p.Thirst = pet.DecayedMeter(p.LastWatered, now, pet.ThirstDecayPerHour)
	p.Happiness = pet.DecayedMeter(p.LastPlayed, now, pet.HappinessDecayPerHour)
	if p == *s.ActivePet {
		return s, false
	}
	s.ActivePet = &p
	return s, true
}

func useBattle(s GameState, now time.Time) (GameState, bool) {
	if s.BattlesRemaining(now) <= 0 {
		return s, false
	}
	b, ok := energy.Spend(energy.Recharge(s.BattleEnergy, now), now)
	if !ok {
		return s, false
	}
	if day := energy.DayKey(now); s.LastBattleDay != day {
		s.LastBattleDay = day
		s.DailyBattlesUsed = 0
	}
	s.DailyBattlesUsed++
	s.BattleEnergy = b
	return s, true
}

func useEnergyBoost(s GameState, now time.Time) (GameState, bool) {
	b := energy.Recharge(s.BattleEnergy, now)
	if s.Consumables.EnergyBoost <= 0 || b.Current >= b.Max {
		return s, false
	}
	s.BattleEnergy = energy.Add(b, 1)
	s.Consumables.EnergyBoost--
	return s, true
}

func claimDaily(s GameState, now time.Time) (GameState, bool) {
	s2 := rollSteps(s, now)
	if s2.DailyGoalClaimedDay == s2.StepDay || s2.TodaySteps < s2.DailyStepGoal {
		return s, false
	}
	s2.DailyGoalClaimedDay = s2.StepDay
	return payReward(s2, dailyReward, now), true
}

func claimWeekly(s GameState, now time.Time) (GameState, bool) {
	s2 := rollSteps(s, now)
	if s2.WeeklyGoalClaimedWeek == s2.StepWeek || s2.WeeklySteps < s2.WeeklyStepGoal {
		return s, false
	}
	s2.WeeklyGoalClaimedWeek = s2.StepWeek
	return payReward(s2, weeklyReward, now), true
}

func payReward(s GameState, r goalReward, now time.Time) GameState {
	s.Consumables.Food = pet.AddCapped(s.Consumables.Food, r.items.Food)
	s.Consumables.Water = pet.AddCapped(s.Consumables.Water, r.items.Water)
	s.Consumables.Toy = pet.AddCapped(s.Consumables.Toy, r.items.Toy)
	s.Consumables.Treat = pet.AddCapped(s.Consumables.Treat, r.items.Treat)
	s.Consumables.EnergyBoost = pet.AddCapped(s.Consumables.EnergyBoost, r.items.EnergyBoost)
	s.BattleEnergy = energy.Add(energy.Recharge(s.BattleEnergy, now), r.energy)
	s, _ = addXP(s, r.xp, now)
	return s
}

func setStepGoal(s GameState, daily int) (GameState, bool) {
	if daily <= 0 {
		return s, false
	}
	daily = max(MinDailyStepGoal, min(MaxDailyStepGoal, daily))
	if daily == s.DailyStepGoal && s.WeeklyStepGoal == daily*WeeklyGoalMultiplier {
		return s, false
	}
	s.DailyStepGoal = daily
	s.WeeklyStepGoal = daily * WeeklyGoalMultiplier
	return s, true
}
