package directory

// Option lists backing the filter form. Chains mirror the networks the
// upstream source actually reports; attributes and categories are accepted
// as query parameters but not yet applied by the pipeline.
var (
	Chains = []string{
		"Ethereum",
		"Arbitrum",
		"Base",
		"Optimism",
		"Polygon",
		"BSC",
		"Avalanche",
		"Solana",
	}

	Categories = []string{
		"Lending",
		"Liquid Staking",
		"DEX",
		"Yield Aggregator",
		"Stablecoin Pool",
	}

	Attributes = []string{
		"stablecoin",
		"single-asset",
		"no-il",
		"audited",
	}
)
