package game

// CopiesPerCategory is how many copies of each catalog card the master deck holds.
const CopiesPerCategory = 2

// catalog lists one definition per category, in category order.
var catalog = []Card{
	// Attack
	{Kind: KindAttack, Category: CategorySQLInjection, Power: 5},
	{Kind: KindAttack, Category: CategoryDDoSAttack, Power: 4},
	{Kind: KindAttack, Category: CategoryRansomware, Power: 6},
	{Kind: KindAttack, Category: CategoryPhishing, Power: 6},
	{Kind: KindAttack, Category: CategoryBruteForce, Power: 3},
	{Kind: KindAttack, Category: CategoryZeroDay, Power: 8},
	{Kind: KindAttack, Category: CategoryWorm, Power: 4},
	{Kind: KindAttack, Category: CategoryRootkit, Power: 5},
	{Kind: KindAttack, Category: CategoryKeylogger, Power: 2},
	{Kind: KindAttack, Category: CategoryPortScanner, Power: 1},

	// Defense
	{Kind: KindDefense, Category: CategoryFirewall, Power: 3},
	{Kind: KindDefense, Category: CategoryDataVault, Power: 6},
	{Kind: KindDefense, Category: CategoryHoneypot, Power: 4},
	{Kind: KindDefense, Category: CategoryBackup, Power: 3},
	{Kind: KindDefense, Category: CategoryMultiFactor, Power: 2},
	{Kind: KindDefense, Category: CategoryEncrypted, Power: 5},
	{Kind: KindDefense, Category: CategorySegmentation, Power: 4},
	{Kind: KindDefense, Category: CategoryDecoySystem, Power: 2},
	{Kind: KindDefense, Category: CategoryProxyServer, Power: 3},
	{Kind: KindDefense, Category: CategoryAudit, Power: 2},

	// Utility
	{Kind: KindUtility, Category: CategoryVirusScan, Power: 4},
	{Kind: KindUtility, Category: CategoryForceReboot, Power: 5},
	{Kind: KindUtility, Category: CategoryScan, Power: 1},
	{Kind: KindUtility, Category: CategoryOverclock, Power: 3},
	{Kind: KindUtility, Category: CategoryPatch, Power: 2},
}

// Catalog returns one card definition per category, for card-library browsing.
func Catalog() []Card {
	return append([]Card(nil), catalog...)
}

// BuildMasterDeck returns the fixed, unshuffled master card set.
func BuildMasterDeck() []Card {
	deck := make([]Card, 0, len(catalog)*CopiesPerCategory)
	for _, c := range catalog {
		for i := 0; i < CopiesPerCategory; i++ {
			deck = append(deck, c)
		}
	}
	return deck
}

// ServerMarker is the decorative card drawn under each server slot.
// Side A's servers show as BACKUP, side B's as PROXY SERVER.
func ServerMarker(side Side, spv int) Card {
	cat := CategoryBackup
	if side == SideB {
		cat = CategoryProxyServer
	}
	return Card{Kind: KindPlayer, Category: cat, Power: spv}
}
