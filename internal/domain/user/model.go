package user

// Principal is the authenticated caller as reported by the account
// service. Users are managed externally; squads reference UserID as an
// opaque string.
type Principal struct {
	UserID   string
	Nickname string
	IsAdmin  bool
}
