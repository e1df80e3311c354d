package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/adapters/restapi"
	"portfolio/internal/domain"
)

type cli struct {
	out      io.Writer
	apiURL   string
	adminKey string
	email    string
	timeout  time.Duration
}

func (c *cli) client() *restapi.Client {
	return restapi.New(c.apiURL, restapi.Options{
		AdminKey:      c.adminKey,
		FallbackEmail: c.email,
		Timeout:       c.timeout,
	})
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outcome prints the visitor-facing message and turns an error outcome into
// a non-zero exit.
func (c *cli) outcome(o domain.Outcome) error {
	fmt.Fprintln(c.out, o.Message)
	if !o.OK() {
		return fmt.Errorf("submission %s", o.Status)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Operate the portfolio API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.apiURL, "api", envOr("FOLIO_API_URL", "http://localhost:8080"), "API base URL (FOLIO_API_URL)")
	pf.StringVar(&c.adminKey, "admin-key", os.Getenv("FOLIO_ADMIN_KEY"), "value sent as X-Admin-Key (FOLIO_ADMIN_KEY)")
	pf.StringVar(&c.email, "fallback-email", os.Getenv("OWNER_EMAIL"), "address offered in failure messages")
	pf.DurationVar(&c.timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(c.reviewsCmd(), c.bookingsCmd(), c.contactCmd(), c.summaryCmd())
	return root
}

func idArg(args []string) (int64, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func (c *cli) reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reviews", Short: "List, submit, or delete client reviews"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the newest reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := c.client().ListReviews(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.printJSON(rs)
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of reviews (server default when 0)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a review (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			if err := c.client().DeleteReview(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "review %d deleted\n", id)
			return nil
		},
	}

	var r domain.Review
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a review as a visitor would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, o := c.client().SubmitReview(cmd.Context(), r)
			return c.outcome(o)
		},
	}
	f := submit.Flags()
	f.StringVar(&r.Name, "name", "", "reviewer name")
	f.StringVar(&r.Role, "role", "", "reviewer role")
	f.StringVar(&r.Company, "company", "", "reviewer company")
	f.IntVar(&r.Rating, "rating", 0, "rating from 1 to 5")
	f.StringVar(&r.Text, "text", "", "review text")

	cmd.AddCommand(list, del, submit)
	return cmd
}

func (c *cli) bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "List, submit, or delete booking requests"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the newest bookings (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bs, err := c.client().ListBookings(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.printJSON(bs)
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of bookings (server default when 0)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a booking (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			if err := c.client().DeleteBooking(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "booking %d deleted\n", id)
			return nil
		},
	}

	var b domain.Booking
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a booking request as a visitor would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			got, o := c.client().SubmitBooking(cmd.Context(), b)
			if o.OK() {
				fmt.Fprintf(c.out, "reference: %s\n", got.Reference)
			}
			return c.outcome(o)
		},
	}
	f := submit.Flags()
	f.StringVar(&b.Name, "name", "", "client name")
	f.StringVar(&b.Email, "email", "", "client email")
	f.StringVar(&b.Phone, "phone", "", "client phone")
	f.StringVar(&b.Company, "company", "", "client company")
	f.StringVar(&b.Service, "service", "", "requested service")
	f.StringVar(&b.PreferredDate, "date", "", "preferred date")
	f.StringVar(&b.Budget, "budget", "", "budget range")
	f.StringVar(&b.Message, "message", "", "project details")

	cmd.AddCommand(list, del, submit)
	return cmd
}

func (c *cli) contactCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contact", Short: "Contact form operations"}

	var m domain.ContactMessage
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a contact message through the site relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.outcome(c.client().SendContact(cmd.Context(), m))
		},
	}
	f := send.Flags()
	f.StringVar(&m.Name, "name", "", "sender name")
	f.StringVar(&m.Email, "email", "", "sender email")
	f.StringVar(&m.Subject, "subject", "", "subject line")
	f.StringVar(&m.Message, "message", "", "message body")

	cmd.AddCommand(send)
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	var latest int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show counts and the latest submissions (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.client().Summary(cmd.Context(), latest)
			if err != nil {
				return err
			}
			return c.printJSON(s)
		},
	}
	cmd.Flags().IntVar(&latest, "latest", 5, "how many recent items to include")
	return cmd
}
