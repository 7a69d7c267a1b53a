// schemectl is a command line front end for the recommendation pipeline:
// it loads a scheme CSV, runs the profile filter/score/rank stages and
// prints the top results.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appConfig "scheme-recommendation-engine/internal/config"
	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/normalizer"
	"scheme-recommendation-engine/internal/services/recommender"
	"scheme-recommendation-engine/internal/utils"
)

const app = "schemectl"

var (
	cfgFile string

	dataFile   string
	age        int
	income     float64
	occupation string
	education  string
	category   string
	location   string
	query      string
	limit      int
	asCSV      bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "schemectl recommends government schemes for a user profile from a local CSV dataset",
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./schemectl.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "path to the scheme CSV dataset")

	recommendCmd.Flags().IntVar(&age, "age", 0, "your age")
	recommendCmd.Flags().Float64Var(&income, "income", 0, "your annual income")
	recommendCmd.Flags().StringVar(&occupation, "occupation", "", `occupation ("any" for no constraint)`)
	recommendCmd.Flags().StringVar(&education, "education", "", "highest education")
	recommendCmd.Flags().StringVar(&category, "category", "", "social category (General/OBC/SC/ST/EWS)")
	recommendCmd.Flags().StringVar(&location, "state", "", "your state")
	recommendCmd.Flags().StringVar(&query, "query", "", "free-text search keyword")
	recommendCmd.Flags().IntVar(&limit, "limit", appConfig.DefaultLimit, "number of recommendations")
	recommendCmd.Flags().BoolVar(&asCSV, "csv", false, "print results as CSV")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(schemesCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("data-file", "gov.csv")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Failed to read config file: %v", err)
		}
	}
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank schemes for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := models.ValidateLimit(limit, appConfig.MaxLimit); err != nil {
			return fmt.Errorf("--limit must be between 1 and %d", appConfig.MaxLimit)
		}

		records, err := loadRecords()
		if err != nil {
			return err
		}

		profile := models.Profile{
			Occupation: occupation,
			Education:  education,
			Category:   category,
			Location:   location,
		}
		if cmd.Flags().Changed("age") {
			profile.Age = &age
		}
		if cmd.Flags().Changed("income") {
			profile.Income = &income
		}

		weights := recommender.DefaultWeights()
		if viper.IsSet("weights") {
			if err := viper.UnmarshalKey("weights", &weights); err != nil {
				return fmt.Errorf("invalid weights in config: %w", err)
			}
		}

		results := recommender.Recommend(profile, query, records, limit, weights)

		if asCSV {
			return printCSV(results)
		}
		printTable(results, len(records))
		return nil
	},
}

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List every scheme in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords()
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%s\t%s\t%s\n", rec.DisplayName, rec.LevelTag, rec.StateTag)
		}
		return nil
	},
}

func loadRecords() ([]models.SchemeRecord, error) {
	path := dataFile
	if path == "" {
		path = viper.GetString("data-file")
	}

	table, loadErrors := utils.LoadTableFile(path)
	if table == nil {
		return nil, loadErrors[0]
	}
	for _, e := range loadErrors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	return normalizer.New().Normalize(table), nil
}

func printTable(results []models.ScoredRecord, total int) {
	fmt.Printf("Top %d results (from %d schemes)\n\n", len(results), total)
	for i, rec := range results {
		fmt.Printf("%d. %s (score %d)\n", i+1, rec.DisplayName, rec.Score)
		fmt.Printf("   %s\n", rec.Description)
		if rec.EligibilityText != "" {
			fmt.Printf("   Eligibility: %s\n", rec.EligibilityText)
		}
		if rec.BenefitsText != "" {
			fmt.Printf("   Benefits: %s\n", rec.BenefitsText)
		}
		fmt.Println()
	}
}

func printCSV(results []models.ScoredRecord) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"display_name", "description", "eligibility", "benefits", "state", "level", "score"}); err != nil {
		return err
	}
	for _, rec := range results {
		row := []string{
			rec.DisplayName, rec.Description, rec.EligibilityText,
			rec.BenefitsText, rec.StateTag, rec.LevelTag, strconv.Itoa(rec.Score),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
