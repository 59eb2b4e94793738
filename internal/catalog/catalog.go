// Package catalog holds the static day-of-week guide messages.
package catalog

import "time"

// Fallback is returned for any weekday without a configured message.
const Fallback = "No message for today."

var messages = map[time.Weekday]string{
	time.Sunday:    "🗓️ Yau Lahadi ne –\n❌ Avoid trading\n✅ Prepare Weekly Zones\n🔍 Review last week's setups",
	time.Monday:    "🗓️ Yau Litinin ne –\n⚠️ Watch Accumulation / False BOS\n✅ Mark liquidity zones + structure\n❌ No early entry",
	time.Tuesday:   "🗓️ Yau Talata ne –\n✅ Wait for BOS confirmation\n✅ Enter based on 15min + 5min confluence\n💡 NY Open = sniper entry",
	time.Wednesday: "🗓️ Yau Laraba ne –\n🔥 Most reliable day for entries\n✅ Breakout / Retest / SMC trades\n🎯 Continue/reverse Monday-Tuesday zone",
	time.Thursday:  "🗓️ Yau Alhamis ne –\n✅ Strong continuation from Wed\n⚠️ Be ready for profit-taking\n✅ Trail SL and manage",
	time.Friday:    "🗓️ Yau Jumma’a ne –\n⚠️ Exit before NY session close\n✅ Avoid late entries\n🧾 Trade review + journal update",
	time.Saturday:  "🗓️ Yau Asabar ne –\n❌ No trade (Crypto only, manipulated)\n✅ Backtest or Learn strategy",
}

// Lookup returns the guide text for the given weekday. It is total: any
// value without an entry yields Fallback.
func Lookup(day time.Weekday) string {
	if text, ok := messages[day]; ok {
		return text
	}
	return Fallback
}
