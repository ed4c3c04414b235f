package entity

import "math/rand"

// AttackResult contains the outcome of a resolved attack.
type AttackResult struct {
	Attacker  string
	Defender  string
	Missed    bool
	Crit      bool
	Damage    int // post-mitigation damage actually dealt
	Killed    bool
	XPGained  int    // granted to a player attacker on kill
	LeveledTo int    // new player level when the XP caused a level-up, else 0
	Loot      string // dropped item id, empty when nothing dropped
}

// ResolveAttack runs one attack: accuracy check, crit roll, damage, and on a
// kill the XP grant and loot roll. Attacks against missing or dead defenders
// resolve to a no-effect result.
func ResolveAttack(rnd *rand.Rand, attacker, defender *Entity) AttackResult {
	res := AttackResult{Attacker: attacker.Name, Defender: defender.Name}
	if !attacker.Alive || !defender.Alive {
		return res
	}

	// Hit probability hit/(hit+eva). A zero denominator counts as a hit.
	if denom := attacker.Hit + defender.Eva; denom > 0 {
		chance := float64(attacker.Hit) / float64(denom)
		if rnd.Float64() > chance {
			res.Missed = true
			return res
		}
	}

	dmg := attacker.Atk
	if rnd.Float64()*100 < float64(attacker.CritChance) {
		dmg = int(float64(dmg) * attacker.CritMult)
		res.Crit = true
	}

	res.Damage = defender.TakeDamage(dmg)
	if defender.Alive {
		return res
	}

	res.Killed = true
	if attacker.Kind == KindPlayer {
		res.XPGained = defender.XPReward
		res.LeveledTo = attacker.GainXP(rnd, defender.XPReward)
	}
	if item, ok := defender.Loot.Roll(rnd); ok {
		res.Loot = item
	}
	return res
}
