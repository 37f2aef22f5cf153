package main

import (
	"github.com/spf13/cobra"
)

// renderCmd：加载一次、渲染一次、发布一次；任何失败以非零状态退出
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch both datasets once and write the map",
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	out, err := a.refresh(cmd.Context())
	if err != nil {
		a.log.Error("render_failed", "err", err)
		return err
	}
	cmd.Printf("rendered %s: %d counties (%d without data) -> %s\n",
		out.ID, out.Stats.Regions, out.Stats.Unmatched, cfg.Output.Dir)
	return nil
}
