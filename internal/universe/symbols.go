package universe

import (
	"slices"
)

// curated groups major S&P 500 and NASDAQ names by sector. Overlaps between
// sectors are intentional; DefaultSymbols removes them.
var curated = [][]string{
	// Mega-cap tech
	{"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "META", "TSLA", "NVDA", "AMD", "INTC",
		"NFLX", "CRM", "ORCL", "ADBE", "CSCO", "AVGO", "QCOM", "TXN", "IBM", "INTU",
		"NOW", "PANW", "SNPS", "CDNS", "AMAT", "LRCX", "KLAC", "ASML", "TSM", "MU",
		"NXPI", "ADI", "MRVL", "SHOP", "SQ", "PYPL", "COIN", "RBLX", "U", "ABNB"},
	// Financials
	{"JPM", "BAC", "WFC", "C", "GS", "MS", "BLK", "SCHW", "AXP", "USB",
		"PNC", "TFC", "COF", "BK", "STT", "NTRS", "CFG", "FITB", "HBAN",
		"RF", "KEY", "MTB", "AIG", "PRU", "MET", "ALL", "TRV", "PGR", "CB",
		"AON", "MMC", "AJG", "SPGI", "MCO", "ICE", "CME", "NDAQ", "MKTX"},
	// Payments
	{"V", "MA", "FIS", "FISV", "ADP", "PAYX"},
	// Healthcare
	{"JNJ", "UNH", "PFE", "ABBV", "MRK", "TMO", "ABT", "LLY", "AMGN", "GILD",
		"CVS", "BMY", "MDT", "DHR", "ISRG", "SYK", "BSX", "EW", "ZTS", "REGN",
		"VRTX", "HUM", "CI", "ELV", "MCK", "COR", "CAH", "BIIB", "MRNA"},
	// Consumer discretionary
	{"HD", "MCD", "NKE", "SBUX", "TJX", "LOW", "TGT", "DG",
		"ROST", "ORLY", "AZO", "BBY", "ULTA", "CMG", "YUM", "DRI", "MAR", "HLT",
		"BKNG", "LVS", "WYNN", "MGM", "F", "GM", "RIVN", "LCID"},
	// Consumer staples
	{"WMT", "PG", "KO", "PEP", "COST", "MDLZ", "PM", "MO", "CL", "KMB",
		"GIS", "K", "HSY", "SYY", "KHC", "CPB", "CAG", "MNST", "KDP", "STZ",
		"TAP", "BF-B", "EL", "CLX", "CHD"},
	// Industrials
	{"BA", "CAT", "GE", "HON", "UPS", "LMT", "RTX", "DE", "MMM", "EMR",
		"ETN", "ITW", "PH", "CMI", "ROK", "DOV", "FDX", "NSC", "UNP", "CSX",
		"ODFL", "JBHT", "CHRW", "XPO", "DAL", "UAL", "AAL", "LUV", "SAVE"},
	// Energy
	{"XOM", "CVX", "COP", "SLB", "EOG", "MPC", "PSX", "VLO", "OXY", "HAL",
		"BKR", "MRO", "DVN", "FANG", "APA", "HES", "KMI", "WMB", "OKE", "LNG"},
	// Materials
	{"LIN", "APD", "SHW", "ECL", "DD", "DOW", "NEM", "FCX", "NUE", "STLD",
		"MLM", "VMC", "ALB", "CE", "FMC", "PPG", "IP", "PKG", "AMCR", "AVY"},
	// Real estate
	{"AMT", "PLD", "CCI", "EQIX", "PSA", "DLR", "WELL", "O", "SPG", "AVB",
		"EQR", "VICI", "VTR", "ARE", "CBRE", "SBAC", "ESS", "MAA", "INVH"},
	// Utilities
	{"NEE", "DUK", "SO", "D", "AEP", "EXC", "SRE", "XEL", "ED", "WEC",
		"ES", "PEG", "PCG", "AWK", "AEE", "CMS", "DTE", "PPL"},
	// Communication services
	{"DIS", "CMCSA", "VZ", "T", "TMUS", "CHTR", "PARA",
		"WBD", "EA", "TTWO", "ATVI", "LYV", "FOXA", "FOX", "NWSA", "NWS", "OMC",
		"IPG", "MTCH", "PINS", "SNAP", "SPOT", "ZM", "DOCU", "DDOG", "NET", "TWLO"},
	// Semiconductors
	{"MCHP", "SWKS", "ON", "MPWR", "ENTG", "QRVO", "WOLF"},
	// Software
	{"WDAY", "TEAM", "SNOW", "ZS", "CRWD", "OKTA", "FTNT", "SPLK", "VEEV", "ANSS",
		"ADSK", "ROP", "TYL", "GWRE", "MANH"},
	// Retail
	{"DLTR", "EBAY", "ETSY", "W", "CHWY", "CASY", "BJ"},
	// Biotech
	{"BNTX", "ALNY", "SGEN", "BMRN", "NBIX", "INCY", "EXAS", "TECH", "ILMN", "IONS",
		"RARE", "UTHR", "SRPT"},
	// Logistics and autos
	{"KNX", "EXPD", "LSTR", "TM", "HMC", "STLA"},
	// Media, restaurants and apparel
	{"SIRI", "IMAX", "ROKU", "FUBO", "DNKN", "WEN", "DPZ", "QSR", "JACK",
		"LULU", "UAA", "UA", "VFC", "HBI", "PVH", "RL", "CPRI", "TPR"},
	// Travel and gaming
	{"EXPE", "TRIP", "H", "RCL", "CCL", "NCLH", "DKNG", "PENN", "LNW", "CZR"},
	// Cybersecurity and renewables
	{"CYBR", "SAIL", "S", "TENB", "QLYS",
		"ENPH", "SEDG", "FSLR", "RUN", "NOVA", "CSIQ", "JKS", "DQ", "SPWR"},
	// EVs, data and fintech
	{"NIO", "XPEV", "LI", "QS", "BLNK", "CHPT",
		"PLTR", "ESTC", "MDB", "ZI", "CFLT", "NCNO",
		"AFRM", "SOFI", "UPST", "LC", "NU"},
	// Aerospace and defense
	{"NOC", "GD", "LHX", "TXT", "HWM", "HII", "LDOS"},
}

// DefaultSymbols returns the curated list, de-duplicated and sorted.
func DefaultSymbols() []string {
	var all []string
	for _, group := range curated {
		all = append(all, group...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
