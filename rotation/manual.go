package rotation

// nextManual lines teams up positionally as a starting suggestion only; the
// operator rearranges courts by hand. No game history is consulted.
func nextManual(params NextRoundParams) *RoundResult {
	return bootstrapRound(params.Teams, params.CourtCount)
}
