package game

// AttackOutcome is the result of resolving one attack against one server slot.
type AttackOutcome struct {
	DefenseAbsorbed  int  // damage taken by the defense layer
	ServerDamage     int  // damage to apply to the server's SPV
	DefenseDestroyed bool // the defense card leaves its slot
	DefenseRemaining int  // defense health after the attack (0 when destroyed or absent)
}

// ResolveAttack splits attackPower between a defense layer and the server
// behind it. guarded reports whether a defense card occupies the slot.
//
// A guarded slot with health > 0 either absorbs the whole attack (power <
// health, server untouched even though health exceeded power) or is destroyed
// (power >= health) with the excess spilling onto the server. An unguarded
// slot, or one whose defense is already at 0 health, takes the full hit.
func ResolveAttack(attackPower, defenseHealth int, guarded bool) AttackOutcome {
	if attackPower < 0 {
		attackPower = 0
	}
	if !guarded || defenseHealth <= 0 {
		return AttackOutcome{ServerDamage: attackPower}
	}
	if attackPower >= defenseHealth {
		return AttackOutcome{
			DefenseAbsorbed:  defenseHealth,
			ServerDamage:     attackPower - defenseHealth,
			DefenseDestroyed: true,
		}
	}
	return AttackOutcome{
		DefenseAbsorbed:  attackPower,
		DefenseRemaining: defenseHealth - attackPower,
	}
}

// ResolveHeal returns the healed SPV, capped at MaxSPV. Destroyed servers
// cannot be healed: ErrServerDestroyed is returned and currentSPV is unchanged.
func ResolveHeal(currentSPV, healPower int) (int, error) {
	if currentSPV <= 0 {
		return currentSPV, ErrServerDestroyed
	}
	if healPower < 0 {
		healPower = 0
	}
	return min(MaxSPV, currentSPV+healPower), nil
}

// ApplyDamageToSPV subtracts amount from currentSPV, flooring at 0.
func ApplyDamageToSPV(currentSPV, amount int) int {
	if amount < 0 {
		amount = 0
	}
	return max(0, currentSPV-amount)
}
