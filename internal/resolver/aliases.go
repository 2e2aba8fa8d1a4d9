package resolver

// defaultAliases maps lower-case names and short forms to identifiers.
var defaultAliases = map[string]string{
	"reliance": "RELIANCE.NS", "ril": "RELIANCE.NS",
	"tcs": "TCS.NS",
	"hdfc": "HDFCBANK.NS", "hdfcbank": "HDFCBANK.NS",
	"icici": "ICICIBANK.NS", "icicibank": "ICICIBANK.NS",
	"infosys": "INFY.NS", "infy": "INFY.NS",
	"bharti": "BHARTIARTL.NS", "airtel": "BHARTIARTL.NS",
	"sbi": "SBIN.NS", "sbin": "SBIN.NS",
	"itc": "ITC.NS",
	"hul": "HINDUNILVR.NS", "hindunilvr": "HINDUNILVR.NS",
	"lt": "LT.NS", "larsen": "LT.NS",
	"kotak": "KOTAKBANK.NS", "kotakbank": "KOTAKBANK.NS",
	"axis": "AXISBANK.NS", "axisbank": "AXISBANK.NS",
	"indusind": "INDUSINDBK.NS",
	"bajajfinance": "BAJFINANCE.NS", "bajaj": "BAJFINANCE.NS",
	"bajajfinsv": "BAJAJFINSV.NS",
	"jiofin": "JIOFIN.NS",
	"sriram": "SHRIRAMFIN.NS", "shriramfin": "SHRIRAMFIN.NS",
	"chola": "CHOLAFIN.NS", "cholafin": "CHOLAFIN.NS",
	"muthoot": "MUTHOOTFIN.NS",
	"sbicard": "SBICARD.NS",
	"hdfclife": "HDFCLIFE.NS",
	"sbilife": "SBILIFE.NS",
	"icicipruli": "ICICIPRULI.NS",
	"icicigi": "ICICIGI.NS", "icicilombard": "ICICIGI.NS",
	"pfc": "PFC.NS",
	"rec": "REC.NS",
	"bajajhold": "BAJAJHLDNG.NS",
	"pnb": "PNB.NS",
	"bob": "BANKBARODA.NS", "bankbaroda": "BANKBARODA.NS",
	"canara": "CANBK.NS",
	"aubank": "AUBANK.NS",
	"idfcfirst": "IDFCFIRSTB.NS",
	"hcl": "HCLTECH.NS", "hcltech": "HCLTECH.NS",
	"wipro": "WIPRO.NS",
	"techm": "TECHM.NS", "techmahindra": "TECHM.NS",
	"ltim": "LTIM.NS", "mindtree": "LTIM.NS",
	"ofss": "OFSS.NS", "oracle": "OFSS.NS",
	"mphasis": "MPHASIS.NS",
	"persistent": "PERSISTENT.NS",
	"maruti": "MARUTI.NS",
	"tatamotors": "TATAMOTORS.NS",
	"mahindra": "M&M.NS", "m&m": "M&M.NS",
	"bajajauto": "BAJAJ-AUTO.NS",
	"eicher": "EICHERMOT.NS", "eichermot": "EICHERMOT.NS",
	"hero": "HEROMOTOCO.NS", "heromotoco": "HEROMOTOCO.NS",
	"tvs": "TVSMOTOR.NS", "tvsmotor": "TVSMOTOR.NS",
	"motherson": "MOTHERSON.NS",
	"bosch": "BOSCHLTD.NS",
	"mrf": "MRF.NS",
	"balkrishna": "BALKRISIND.NS",
	"ongc": "ONGC.NS",
	"ntpc": "NTPC.NS",
	"powergrid": "POWERGRID.NS",
	"coalindia": "COALINDIA.NS",
	"bpcl": "BPCL.NS",
	"ioc": "IOC.NS",
	"gail": "GAIL.NS",
	"tatapower": "TATAPOWER.NS",
	"adanigreen": "ADANIGREEN.NS",
	"adanipower": "ADANIPOWER.NS",
	"nhpc": "NHPC.NS",
	"jswenergy": "JSWENERGY.NS",
	"nestle": "NESTLEIND.NS",
	"britannia": "BRITANNIA.NS",
	"tataconsum": "TATACONSUM.NS",
	"titan": "TITAN.NS",
	"asianpaint": "ASIANPAINT.NS", "asian": "ASIANPAINT.NS",
	"berger": "BERGEPAINT.NS",
	"dabur": "DABUR.NS",
	"godrejcp": "GODREJCP.NS",
	"marico": "MARICO.NS",
	"colgate": "COLPAL.NS", "colpal": "COLPAL.NS",
	"varun": "VBL.NS", "vbl": "VBL.NS",
	"ubl": "UBL.NS",
	"zomato": "ZOMATO.NS",
	"avenue": "DMART.NS", "dmart": "DMART.NS",
	"trent": "TRENT.NS",
	"havells": "HAVELLS.NS",
	"pidilite": "PIDILITIND.NS",
	"page": "PAGEIND.NS",
	"sunpharma": "SUNPHARMA.NS",
	"cipla": "CIPLA.NS",
	"drreddy": "DRREDDY.NS",
	"divis": "DIVISLAB.NS", "divislab": "DIVISLAB.NS",
	"apollo": "APOLLOHOSP.NS", "apollohosp": "APOLLOHOSP.NS",
	"torrent": "TORNTPHARM.NS",
	"mankind": "MANKIND.NS",
	"zydus": "ZYDUSLIFE.NS",
	"lupin": "LUPIN.NS",
	"max": "MAXHEALTH.NS", "maxhealth": "MAXHEALTH.NS",
	"aurobindo": "AUROPHARMA.NS",
	"tatasteel": "TATASTEEL.NS",
	"jswsteel": "JSWSTEEL.NS",
	"hindalco": "HINDALCO.NS",
	"vedanta": "VEDL.NS", "vedl": "VEDL.NS",
	"jindalsteel": "JINDALSTEL.NS",
	"nmdc": "NMDC.NS",
	"adani": "ADANIENT.NS", "adanient": "ADANIENT.NS",
	"adaniports": "ADANIPORTS.NS",
	"ultratech": "ULTRACEMCO.NS",
	"grasim": "GRASIM.NS",
	"ambuja": "AMBUJACEM.NS",
	"shree": "SHREECEM.NS",
	"acc": "ACC.NS",
	"siemens": "SIEMENS.NS",
	"abb": "ABB.NS",
	"hal": "HAL.NS",
	"bel": "BEL.NS",
	"dlf": "DLF.NS",
	"lodha": "LODHA.NS",
	"godrejprop": "GODREJPROP.NS",
	"irctc": "IRCTC.NS",
	"indigo": "INDIGO.NS",
	"naukri": "NAUKRI.NS",
	"polycab": "POLYCAB.NS",
	"supreme": "SUPREMEIND.NS",
	"srf": "SRF.NS",
	"piind": "PIIND.NS",
	"aapl": "AAPL", "apple": "AAPL",
	"msft": "MSFT", "microsoft": "MSFT",
	"googl": "GOOGL", "google": "GOOGL",
	"amzn": "AMZN", "amazon": "AMZN",
	"tsla": "TSLA", "tesla": "TSLA",
	"meta": "META",
	"nvda": "NVDA", "nvidia": "NVDA",
}

// foreignSymbols are bare tickers that must never get a domestic suffix.
var foreignSymbols = map[string]struct{}{
	"AAPL": {}, "MSFT": {}, "GOOGL": {}, "GOOG": {}, "AMZN": {}, "META": {}, "TSLA": {}, "NVDA": {}, "NFLX": {}, "AMD": {},
	"INTC": {}, "QCOM": {}, "AVGO": {}, "TXN": {}, "MU": {}, "AMAT": {}, "LRCX": {}, "KLAC": {}, "JPM": {}, "BAC": {}, "WFC": {},
	"GS": {}, "MS": {}, "C": {}, "BLK": {}, "V": {}, "MA": {}, "PYPL": {}, "SQ": {}, "JNJ": {}, "PFE": {}, "MRK": {}, "ABBV": {}, "LLY": {},
	"BMY": {}, "AMGN": {}, "GILD": {}, "UNH": {}, "XOM": {}, "CVX": {}, "COP": {}, "EOG": {}, "SLB": {}, "WMT": {}, "HD": {}, "COST": {},
	"TGT": {}, "LOW": {}, "DIS": {}, "CMCSA": {}, "T": {}, "VZ": {}, "TMUS": {}, "GM": {}, "F": {}, "BA": {}, "LMT": {}, "RTX": {}, "GE": {},
	"HON": {}, "MMM": {}, "UBER": {}, "LYFT": {}, "ABNB": {}, "BKNG": {}, "COIN": {}, "HOOD": {}, "SCHW": {}, "CRM": {}, "NOW": {},
	"WDAY": {}, "ADBE": {}, "ORCL": {}, "INTU": {}, "ACM": {}, "AECOM": {}, "MTZ": {}, "PWR": {}, "SPY": {}, "QQQ": {}, "IWM": {},
	"GLD": {}, "SLV": {}, "SPGI": {}, "MCO": {}, "ICE": {}, "CME": {}, "RACE": {}, "NIO": {}, "LI": {}, "XPEV": {}, "RIVN": {},
}
