// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/bvk/bandbot/ledger"
	"github.com/google/subcommands"
)

// Orders lists the order records in the ledger.
type Orders struct {
	dbFlags

	pendingOnly bool
}

func (c *Orders) Name() string     { return "orders" }
func (c *Orders) Synopsis() string { return "Lists order records from the ledger" }
func (c *Orders) Usage() string {
	return `orders [options]:
  Prints one line per recorded buy order, with its sell order when one is
  created.
`
}

func (c *Orders) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
	fset.BoolVar(&c.pendingOnly, "pending", false, "lists only records without a sell order")
}

func (c *Orders) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		slog.Error("orders has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Orders) run(ctx context.Context) error {
	db, closer, err := c.getDatabase()
	if err != nil {
		return err
	}
	defer closer()

	store := ledger.NewStore(db)
	var recs []*ledger.OrderRecord
	if c.pendingOnly {
		recs, err = store.Pending(ctx)
	} else {
		recs, err = store.List(ctx)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "BUY-ORDER\tPRODUCT\tBUY-DATE\tBUY-PRICE\tBUY-SIZE\tSIGNAL\tSELL-ORDER\tTARGET-PRICE")
	for _, r := range recs {
		date := ""
		if !r.BuyDate.IsZero() {
			date = r.BuyDate.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.BuyOrderID, r.ProductID, date, r.BuyBasePrice, r.BuyBaseSize, r.Signal, r.SellOrderID, r.SellTargetPrice)
	}
	return tw.Flush()
}
