package classify

// Static keyword fallback lists, used when the remote catalog is not loaded
// or produced no match. Tested in priority order: high, then medium, then
// low; absence from all three defaults to low impact.
var (
	highImpactKeywords = []string{
		"instagram",
		"tiktok",
		"youtube",
		"facebook",
		"snapchat",
		"netflix",
		"twitch",
		"reddit",
		"twitter",
		"video",
		"game",
	}

	mediumImpactKeywords = []string{
		"spotify",
		"music",
		"stream",
		"podcast",
		"browser",
		"chrome",
		"firefox",
		"whatsapp",
		"telegram",
		"messenger",
		"mail",
		"maps",
	}

	lowImpactKeywords = []string{
		"calculator",
		"calendar",
		"notes",
		"clock",
		"weather",
		"reader",
		"editor",
		"terminal",
		"files",
	}
)
