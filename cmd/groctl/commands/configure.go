package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apifarms "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
)

var (
	configureLayout string
	configureName   string
	configureSlug   string
	configureParent string
)

var configureFarmCmd = &cobra.Command{
	Use:   "configure-farm",
	Short: "Configure the farm's layout, name and parent server",
	Long: `Configure the farm by PUTting an update through its lifecycle.

Setting -l/--layout for the first time creates the farm's data store
and its root Enclosure; once set, the layout is locked. Setting
--parent registers the farm with that root server.`,
	RunE: runConfigureFarm,
}

func init() {
	configureFarmCmd.Flags().StringVarP(
		&configureLayout, "layout", "l", "", "layout to configure the farm with",
	)
	configureFarmCmd.Flags().StringVar(
		&configureName, "name", "", "name of the farm",
	)
	configureFarmCmd.Flags().StringVar(
		&configureSlug, "slug", "", "slug of the farm (derived from the name when omitted)",
	)
	configureFarmCmd.Flags().StringVar(
		&configureParent, "parent", "", "URL of the root server to register with",
	)
	rootCmd.AddCommand(configureFarmCmd)
}

func runConfigureFarm(cmd *cobra.Command, args []string) error {
	update := apifarms.Update{}
	if cmd.Flags().Changed("layout") {
		update.Layout = &configureLayout
	}
	if cmd.Flags().Changed("name") {
		update.Name = &configureName
	}
	if cmd.Flags().Changed("slug") {
		update.Slug = &configureSlug
	}
	if cmd.Flags().Changed("parent") {
		update.ParentServerURL = &configureParent
	}
	if update == (apifarms.Update{}) {
		return fmt.Errorf("nothing to configure: pass at least one of --layout, --name, --slug, --parent")
	}

	ctx := context.Background()
	cli := newClient()
	farm, err := cli.Farm(ctx)
	if err != nil {
		return err
	}
	updated, err := cli.UpdateFarm(ctx, farm.ID, update)
	if err != nil {
		return err
	}

	layout := "(none)"
	if updated.Layout != nil {
		layout = *updated.Layout
	}
	fmt.Printf("farm %q (slug %q) configured with layout %s\n", updated.Name, updated.Slug, layout)
	return nil
}
