package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/panel"
	"github.com/dmitrijs2005/classifieds/internal/filex"
)

// Panel (re)loads the admin panel and prints a summary.
func (a *App) Panel(ctx context.Context, _ []string) error {
	if err := a.adminService.Load(ctx); err != nil {
		return err
	}
	a.printPanelSummary()
	return nil
}

func (a *App) printPanelSummary() {
	st := a.adminService.State()
	users, ads := st.Users(), st.Ads()

	var admins, blocked, review int
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
		if u.IsBlocked {
			blocked++
		}
	}
	for _, ad := range ads {
		if ad.Status.Normalize() == models.AdStatusReview {
			review++
		}
	}
	a.printf("Admin panel: %d users (%d admins, %d blocked), %d ads (%d in review)\n",
		len(users), admins, blocked, len(ads), review)
}

// ensurePanel loads the panel on first use.
func (a *App) ensurePanel(ctx context.Context) error {
	if a.adminService.State().Loaded() {
		return nil
	}
	return a.adminService.Load(ctx)
}

// Users prints the users matching the optional filter.
func (a *App) Users(ctx context.Context, args []string) error {
	if err := a.ensurePanel(ctx); err != nil {
		return err
	}
	users := panel.FilterUsers(a.adminService.State().Users(), strings.Join(args, " "))

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tADMIN\tBLOCKED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.FullName(), yesNo(u.IsAdmin), yesNo(u.IsBlocked))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("%d user(s)\n", len(users))
	return nil
}

// AdList prints the ads matching the optional filter.
func (a *App) AdList(ctx context.Context, args []string) error {
	if err := a.ensurePanel(ctx); err != nil {
		return err
	}
	ads := panel.FilterAds(a.adminService.State().Ads(), strings.Join(args, " "))

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tSTATUS\tIMAGES")
	for _, ad := range ads {
		ids := make([]string, 0, len(ad.Images))
		for _, img := range ad.Images {
			ids = append(ids, img.ID.String())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ad.ID, ad.Title, ad.UserEmail, ad.Status.Normalize(), strings.Join(ids, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("%d ad(s)\n", len(ads))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// idAction runs a one-argument admin action and prints done on success.
func (a *App) idAction(ctx context.Context, args []string, form, done string, fn func(context.Context, models.ID) error) error {
	if len(args) < 1 {
		return usage(form)
	}
	if err := fn(ctx, models.ID(args[0])); err != nil {
		return err
	}
	printlnFn(done)
	return nil
}

func (a *App) BlockUser(ctx context.Context, args []string) error {
	return a.idAction(ctx, args, "block <user-id>", "User blocked", a.adminService.BlockUser)
}

func (a *App) UnblockUser(ctx context.Context, args []string) error {
	return a.idAction(ctx, args, "unblock <user-id>", "User unblocked", a.adminService.UnblockUser)
}

// DeleteUser asks for confirmation and, when the target is an
// administrator, for the admin password.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("deluser <user-id>")
	}
	if err := a.ensurePanel(ctx); err != nil {
		return err
	}
	id := models.ID(args[0])

	label := id.String()
	target, known := a.adminService.State().FindUser(id)
	if known {
		label = target.Email
	}
	if !confirm(a.reader, fmt.Sprintf("Delete user %s and all of their ads?", label), a.out) {
		printlnFn("Cancelled")
		return nil
	}

	var adminPassword string
	if known && target.IsAdmin {
		pw, err := getPassword(a.out, "This user is an administrator. Enter your admin password")
		if err != nil {
			return err
		}
		adminPassword = pw
	}

	if err := a.adminService.DeleteUser(ctx, id, adminPassword); err != nil {
		return err
	}
	printlnFn("User deleted")
	return nil
}

func (a *App) SetUserPassword(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("setpw <user-id>")
	}
	pw, confirm, err := a.newPassword("New password for user " + args[0])
	if err != nil {
		return err
	}
	if err := a.adminService.SetPassword(ctx, models.ID(args[0]), pw, confirm); err != nil {
		return err
	}
	printlnFn("Password updated")
	return nil
}

func (a *App) CreateAdmin(ctx context.Context, _ []string) error {
	var req models.CreateAdminRequest
	var err error

	if req.Email, err = getSimpleText(a.reader, "Administrator email", a.out); err != nil {
		return err
	}
	if req.Name, err = getSimpleText(a.reader, "Name (optional)", a.out); err != nil {
		return err
	}
	if req.Surname, err = getSimpleText(a.reader, "Surname (optional)", a.out); err != nil {
		return err
	}
	pw, confirm, err := a.newPassword("Password")
	if err != nil {
		return err
	}
	req.Password = pw

	if err := a.adminService.CreateAdmin(ctx, req, confirm); err != nil {
		return err
	}
	printlnFn("Administrator created")
	a.printPanelSummary()
	return nil
}

func (a *App) PromoteAdmin(ctx context.Context, args []string) error {
	email, err := a.ask(args, 0, "Email of the user to promote")
	if err != nil {
		return err
	}
	if err := a.adminService.PromoteAdmin(ctx, email); err != nil {
		return err
	}
	printlnFn(email, "is now an administrator")
	return nil
}

// BlockAd sends an ad back to review.
func (a *App) BlockAd(ctx context.Context, args []string) error {
	return a.idAction(ctx, args, "blockad <ad-id>", "Ad sent to review", a.adminService.BlockAd)
}

func (a *App) UnblockAd(ctx context.Context, args []string) error {
	return a.idAction(ctx, args, "unblockad <ad-id>", "Ad is active", a.adminService.UnblockAd)
}

func (a *App) RemoveAd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("rmad <ad-id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete ad %s?", args[0]), a.out) {
		printlnFn("Cancelled")
		return nil
	}
	return a.idAction(ctx, args, "rmad <ad-id>", "Ad deleted", a.adminService.DeleteAd)
}

func (a *App) RemoveAdImage(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("rmimg <ad-id> <image-id>")
	}
	if err := a.adminService.DeleteAdImage(ctx, models.ID(args[0]), models.ID(args[1])); err != nil {
		return err
	}
	printlnFn("Image deleted")
	return nil
}

// Export writes the loaded panel to a workbook in the export directory. The
// file name defaults to a timestamped one.
func (a *App) Export(ctx context.Context, args []string) error {
	if err := a.ensurePanel(ctx); err != nil {
		return err
	}
	dir, err := filex.EnsureSubdDir(a.config.ExportDir)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("panel-%s.xlsx", now().Format("20060102-150405"))
	if len(args) > 0 {
		name = filex.SafeName(args[0], name)
		if filepath.Ext(name) == "" {
			name += ".xlsx"
		}
	}
	path := filepath.Join(dir, name)

	if err := a.adminService.Export(ctx, path); err != nil {
		return err
	}
	a.printf("Exported to %s\n", path)
	return nil
}
