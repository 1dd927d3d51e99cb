//go:build !race

package auth

func defaultHashCost() int {
	return 12
}
