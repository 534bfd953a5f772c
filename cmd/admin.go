package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rwapool/core"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "pool administration",
}

func newAdminService() core.IAdminService {
	database := provideDatabase()
	return provideAdminService(database, providePoolStore(database))
}

func adminUser(cmd *cobra.Command) string {
	admin, _ := cmd.Flags().GetString("admin")
	if admin == "" && len(cfg.Admins) > 0 {
		admin = cfg.Admins[0]
	}

	if admin == "" {
		panic("no admin configured")
	}

	return admin
}

// scaledRate parse a decimal string into the 7 decimal fixed point rate scale
func scaledRate(raw string) int64 {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		panic(err)
	}

	return d.Shift(7).Truncate(0).IntPart()
}

var initPoolCmd = &cobra.Command{
	Use:   "init",
	Short: "create the pool from configured defaults",
	Run: func(cmd *cobra.Command, args []string) {
		adminService := newAdminService()
		if err := adminService.InitPool(cmd.Context(), adminUser(cmd)); err != nil {
			panic(err)
		}
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "set pool status: active, on_ice or frozen",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var status core.PoolStatus
		switch args[0] {
		case "active":
			status = core.PoolStatusActive
		case "on_ice":
			status = core.PoolStatusOnIce
		case "frozen":
			status = core.PoolStatusFrozen
		default:
			panic("invalid status")
		}

		adminService := newAdminService()
		if err := adminService.SetStatus(cmd.Context(), adminUser(cmd), status); err != nil {
			panic(err)
		}
	},
}

var setCollateralFactorCmd = &cobra.Command{
	Use:   "set-collateral-factor",
	Short: "set the collateral factor of a token",
	Run: func(cmd *cobra.Command, args []string) {
		token, e := cmd.Flags().GetString("token")
		if e != nil || token == "" {
			panic("invalid token")
		}
		factor, e := cmd.Flags().GetString("factor")
		if e != nil || factor == "" {
			panic("invalid factor")
		}

		adminService := newAdminService()
		if err := adminService.SetCollateralFactor(cmd.Context(), adminUser(cmd), token, scaledRate(factor)); err != nil {
			panic(err)
		}
	},
}

var setRateParamsCmd = &cobra.Command{
	Use:   "set-rate-params",
	Short: "set the interest rate curve of a reserve",
	Run: func(cmd *cobra.Command, args []string) {
		asset, e := cmd.Flags().GetString("asset")
		if e != nil || asset == "" {
			panic("invalid asset")
		}

		read := func(name string) int64 {
			raw, e := cmd.Flags().GetString(name)
			if e != nil || raw == "" {
				panic("invalid " + name)
			}
			return scaledRate(raw)
		}

		params := &core.InterestRateParams{
			TargetUtil: read("target-util"),
			MaxUtil:    read("max-util"),
			RBase:      read("r-base"),
			ROne:       read("r-one"),
			RTwo:       read("r-two"),
			RThree:     read("r-three"),
			Reactivity: read("reactivity"),
		}

		adminService := newAdminService()
		if err := adminService.SetRateParams(cmd.Context(), adminUser(cmd), asset, params); err != nil {
			panic(err)
		}
	},
}

var setTokenContractCmd = &cobra.Command{
	Use:   "set-token-contract",
	Short: "bind an asset to its token contract",
	Run: func(cmd *cobra.Command, args []string) {
		asset, e := cmd.Flags().GetString("asset")
		if e != nil || asset == "" {
			panic("invalid asset")
		}
		contract, e := cmd.Flags().GetString("contract")
		if e != nil || contract == "" {
			panic("invalid contract")
		}

		adminService := newAdminService()
		if err := adminService.SetTokenContract(cmd.Context(), adminUser(cmd), asset, contract); err != nil {
			panic(err)
		}
	},
}

var setBackstopTokenCmd = &cobra.Command{
	Use:   "set-backstop-token",
	Short: "set the backstop deposit token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		adminService := newAdminService()
		if err := adminService.SetBackstopToken(cmd.Context(), adminUser(cmd), args[0]); err != nil {
			panic(err)
		}
	},
}

var setTakeRateCmd = &cobra.Command{
	Use:   "set-take-rate",
	Short: "set the backstop take rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		adminService := newAdminService()
		if err := adminService.SetBackstopTakeRate(cmd.Context(), adminUser(cmd), scaledRate(args[0])); err != nil {
			panic(err)
		}
	},
}

func init() {
	adminCmd.PersistentFlags().String("admin", "", "admin user id, default is the first configured admin")

	setCollateralFactorCmd.Flags().String("token", "", "collateral token")
	setCollateralFactorCmd.Flags().String("factor", "", "collateral factor, e.g. 0.75")

	setRateParamsCmd.Flags().String("asset", "", "reserve asset")
	setRateParamsCmd.Flags().String("target-util", "", "target utilization, e.g. 0.75")
	setRateParamsCmd.Flags().String("max-util", "", "max utilization, e.g. 0.95")
	setRateParamsCmd.Flags().String("r-base", "", "base rate, e.g. 0.01")
	setRateParamsCmd.Flags().String("r-one", "", "first slope, e.g. 0.05")
	setRateParamsCmd.Flags().String("r-two", "", "second slope, e.g. 0.5")
	setRateParamsCmd.Flags().String("r-three", "", "third slope, e.g. 1.5")
	setRateParamsCmd.Flags().String("reactivity", "", "rate modifier reactivity, e.g. 0.000001")

	setTokenContractCmd.Flags().String("asset", "", "asset")
	setTokenContractCmd.Flags().String("contract", "", "token contract address")

	adminCmd.AddCommand(initPoolCmd,
		setStatusCmd,
		setCollateralFactorCmd,
		setRateParamsCmd,
		setTokenContractCmd,
		setBackstopTokenCmd,
		setTakeRateCmd)
	rootCmd.AddCommand(adminCmd)
}
