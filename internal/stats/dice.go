package stats

import (
	"math/rand"
	"regexp"
	"strconv"
)

// CheckRoll rolls a d20 ability check and returns the raw die alongside
// the total with the bonus applied.
func CheckRoll(bonus int) (roll, total int) {
	roll = rand.Intn(20) + 1
	return roll, roll + bonus
}

// Roll rolls n dice with the given number of sides and returns each result.
func Roll(n, sides int) []int {
	rolls := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rolls = append(rolls, rand.Intn(sides)+1)
	}
	return rolls
}

// RollWithBonus rolls n dice and returns the summed total plus a bonus.
func RollWithBonus(n, sides, bonus int) int {
	total := bonus
	for _, r := range Roll(n, sides) {
		total += r
	}
	return total
}

// diceNotationRegex matches strict dice notation like "1d6", "2d4+1", "1d8-2".
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// RollResult is the outcome of evaluating a dice expression.
type RollResult struct {
	Rolls    []int
	Modifier int
	Total    int
}

// RollExpression evaluates dice notation of the form NdM with an optional
// signed modifier. Returns nil if the expression does not match the pattern.
func RollExpression(expr string) *RollResult {
	matches := diceNotationRegex.FindStringSubmatch(expr)
	if matches == nil {
		return nil
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])
	if sides < 1 {
		return nil
	}

	modifier := 0
	if matches[3] != "" {
		modifier, _ = strconv.Atoi(matches[3])
	}

	result := &RollResult{
		Rolls:    Roll(count, sides),
		Modifier: modifier,
		Total:    modifier,
	}
	for _, r := range result.Rolls {
		result.Total += r
	}
	return result
}

// ValidExpression reports whether expr is well-formed dice notation without
// rolling it.
func ValidExpression(expr string) bool {
	return diceNotationRegex.MatchString(expr)
}
