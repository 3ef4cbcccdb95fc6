package ledger

import (
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DumpTokenAccounts renders a human-readable table snapshot of the given
// token accounts, for use in test failure messages and debug traces.
func DumpTokenAccounts(l *Ledger, labels map[solana.PublicKey]string) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Account", "Mint", "Owner", "Amount", "State"})
	for pubkey, ta := range l.tokenAccounts {
		label := labels[pubkey]
		if label == "" {
			label = pubkey.String()
		}
		state := "initialized"
		if ta.State == AccountFrozen {
			state = "frozen"
		}
		t.AppendRow(table.Row{label, ta.Mint.String(), ta.Owner.String(), ta.Amount, state})
	}
	var sb strings.Builder
	sb.WriteString(t.Render())
	return sb.String()
}
