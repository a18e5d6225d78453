package main

// Build or run the resume prompt against a local resume and job description:
//   go run ./cmd/prompttest --resume ./resume.pdf --jd ./job.txt
//   go run ./cmd/prompttest --resume ./resume.pdf --jd ./job.txt --generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-o-matic/internal/bootstrap"
	"resume-o-matic/internal/corrections"
	"resume-o-matic/internal/extract"
	"resume-o-matic/internal/facts"
	"resume-o-matic/internal/prompt"
	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/shared/telemetry"
	"resume-o-matic/internal/submissions"
	"resume-o-matic/internal/workflow"
)

var (
	resumePath string
	jdPath     string
	mode       string
	appType    string
	recruiter  string
	outPath    string
	generate   bool
	persist    bool
)

var rootCmd = &cobra.Command{
	Use:          "prompttest",
	Short:        "Print the resume prompt or run a full generation from local files",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&resumePath, "resume", "", "Path to resume file (pdf or docx)")
	rootCmd.Flags().StringVar(&jdPath, "jd", "", "Path to job description file")
	rootCmd.Flags().StringVar(&mode, "mode", string(submissions.ModeResume), "Resume or CV")
	rootCmd.Flags().StringVar(&appType, "application-type", submissions.ApplicationDirect, "Application type")
	rootCmd.Flags().StringVar(&recruiter, "recruiter", "", "Recruiter name for agency applications")
	rootCmd.Flags().StringVar(&outPath, "out", "", "Path to also write the output (optional)")
	rootCmd.Flags().BoolVar(&generate, "generate", false, "Call the configured model and print the stored submission")
	rootCmd.Flags().BoolVar(&persist, "persist", false, "Use the configured database instead of in-memory repositories")
	_ = rootCmd.MarkFlagRequired("jd")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer telemetry.Sync()
	if !persist {
		cfg.DBDriver = "memory"
	}

	jd, err := os.ReadFile(jdPath)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}

	var upload *workflow.Upload
	if strings.TrimSpace(resumePath) != "" {
		if _, err := mimeFromExt(resumePath); err != nil {
			return err
		}
		data, err := os.ReadFile(resumePath)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		upload = &workflow.Upload{FileName: filepath.Base(resumePath), Data: data}
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var output []byte
	if generate {
		outcome, err := app.Workflow.Submit(ctx, workflow.Request{
			JobDescription:  string(jd),
			ApplicationType: appType,
			RecruiterName:   recruiter,
			Mode:            submissions.Mode(mode),
			Resume:          upload,
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		output, err = json.MarshalIndent(outcome.Submission, "", "  ")
		if err != nil {
			return fmt.Errorf("format json: %w", err)
		}
	} else {
		text, err := dryRunPrompt(ctx, app, string(jd), upload)
		if err != nil {
			return err
		}
		output = []byte(text)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if _, err := os.Stdout.Write(output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	if len(output) == 0 || output[len(output)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
	return nil
}

func dryRunPrompt(ctx context.Context, app *bootstrap.App, jd string, upload *workflow.Upload) (string, error) {
	loader := &extract.Loader{ResumeDir: app.Config.ResumeDir}
	var (
		doc extract.Document
		err error
	)
	if upload != nil {
		doc, err = loader.FromUpload(ctx, upload.FileName, upload.Data)
	} else {
		doc, err = loader.Default(ctx, mode)
	}
	if err != nil {
		return "", fmt.Errorf("load resume: %w", err)
	}

	corr, err := app.CorrectionsService.List(ctx, corrections.ContextResume)
	if err != nil {
		return "", fmt.Errorf("list corrections: %w", err)
	}
	factList, err := app.FactsService.Texts(ctx, facts.KindFact)
	if err != nil {
		return "", fmt.Errorf("list facts: %w", err)
	}
	tweakList, err := app.FactsService.Texts(ctx, facts.KindTweak)
	if err != nil {
		return "", fmt.Errorf("list tweaks: %w", err)
	}

	return prompt.Resume(prompt.Input{
		JobDescription:  jd,
		ApplicationType: appType,
		RecruiterName:   recruiter,
		Mode:            mode,
		CandidateText:   doc.Text,
		Corrections:     corr,
		Facts:           factList,
		Tweaks:          tweakList,
	}), nil
}

func mimeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	default:
		return "", fmt.Errorf("unsupported resume file type: %s", filepath.Ext(path))
	}
}
