package actionlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/linkarena/internal/model"
)

// Check verifies that every record of l honours the output contract.
// A failure points at an engine bug rather than at the caller.
func Check(l Log) error {
	var errs []error
	for i, r := range l {
		if err := checkRecord(r); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%s): %w", i, actionOf(r), err))
		}
	}
	return errors.Join(errs...)
}

// Warn runs Check and logs any inconsistency without failing the action.
func Warn(ctx context.Context, arenaID string, l Log) {
	if err := Check(l); err != nil {
		slog.WarnContext(ctx, "action log inconsistent", "arena", arenaID, "records", len(l), "error", err)
	}
}

func actionOf(r Record) string {
	if r == nil {
		return "nil"
	}
	return r.Action()
}

func positive(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, v)
	}
	return nil
}

func uses(v int) error {
	if v < -1 {
		return fmt.Errorf("uses must be -1 or more, got %d", v)
	}
	return nil
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%s is negative: %d", name, v)
	}
	return nil
}

func percent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s out of [0, 100]: %d", name, v)
	}
	return nil
}

func checkRecord(r Record) error {
	switch r := r.(type) {
	case nil:
		return errors.New("nil record")
	case BeginTurn, EndTurn, ContinueTurn, Wait:
		return nil
	case ChangeTurn:
		return positive("turn", r.Turn)
	case ChangePhase:
		if r.Phase < 0 || r.Phase >= model.MaxTeams {
			return fmt.Errorf("phase out of range: %d", r.Phase)
		}
	case Victory:
		return positive("turns", r.Turns)
	case EquipWeapon:
		return errors.Join(positive("unit", r.Unit), positive("weapon", r.Weapon))
	case UnequipWeapon:
		return errors.Join(positive("unit", r.Unit), positive("weapon", r.Weapon))
	case EquipItem:
		return errors.Join(positive("unit", r.Unit), positive("item", r.Item))
	case UnequipItem:
		return errors.Join(positive("unit", r.Unit), positive("item", r.Item))
	case ChangeWeaponInventoryID:
		if r.NewID < 0 {
			return fmt.Errorf("negative inventory slot %d", r.NewID)
		}
		return positive("weapon", r.Weapon)
	case ChangeItemInventoryID:
		if r.NewID < 0 {
			return fmt.Errorf("negative inventory slot %d", r.NewID)
		}
		return positive("item", r.Item)
	case ChangeWeaponUses:
		return errors.Join(positive("weapon", r.Weapon), uses(r.NewUses))
	case ChangeItemUses:
		return errors.Join(positive("item", r.Item), uses(r.NewUses))
	case RemoveWeapon:
		return errors.Join(positive("unit", r.Unit), positive("weapon", r.Weapon))
	case RemoveItem:
		return errors.Join(positive("unit", r.Unit), positive("item", r.Item))
	case ReplaceWeapon:
		if r.Weapon != r.NewData.ID {
			return fmt.Errorf("replacement data describes weapon %d, not %d", r.NewData.ID, r.Weapon)
		}
		return uses(r.NewData.CurrentUses)
	case StealItem:
		return errors.Join(positive("unit", r.Unit), positive("from", r.From), positive("item", r.Item))
	case EffectiveAttacks:
		return positive("unit", r.Unit)
	case ActivateSkill:
		if r.Skill == "" {
			return errors.New("skill name is empty")
		}
	case StartCombat:
		return errors.Join(
			positive("attacker", r.Attacker),
			positive("defender", r.Defender),
			nonNegative("attacker_displayed_dmg", r.AttackerDisplayedDmg),
			percent("attacker_displayed_hit", r.AttackerDisplayedHit),
			percent("attacker_displayed_crit", r.AttackerDisplayedCrit),
			nonNegative("defender_displayed_dmg", r.DefenderDisplayedDmg),
			percent("defender_displayed_hit", r.DefenderDisplayedHit),
			percent("defender_displayed_crit", r.DefenderDisplayedCrit),
		)
	case EndCombat:
		if r.PointsToAttacker < 0 || r.PointsToDefender < 0 {
			return errors.New("negative points")
		}
	case Attack:
		if r.Miss && (r.Crit || r.Dmg != 0) {
			return fmt.Errorf("miss with crit=%t dmg=%d", r.Crit, r.Dmg)
		}
		if r.Dmg < 0 {
			return fmt.Errorf("negative damage %d", r.Dmg)
		}
		return errors.Join(positive("by_unit", r.ByUnit), positive("against_unit", r.AgainstUnit))
	case RestoreHealth:
		if r.Health < 0 {
			return fmt.Errorf("negative health %d", r.Health)
		}
		return positive("unit", r.Unit)
	case KillUnit:
		return positive("unit", r.Unit)
	case PointsForSurvival:
		return positive("unit", r.Unit)
	default:
		return fmt.Errorf("unknown record type %T", r)
	}
	return nil
}
