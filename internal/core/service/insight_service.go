package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// TextGenerator produces one completion from a system instruction and a
// prompt. jsonOutput requests a machine-parseable JSON body.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemInstruction, prompt string, jsonOutput bool) (string, error)
}

const wellbeingAnalysisWindow = 20

const roastSystemInstruction = `You are a hilariously sarcastic financial advisor AI with a roast comedy style. Your job is to analyze student spending habits and provide brutally honest, funny commentary while ALSO giving genuine insights.

IMPORTANT CONTEXT:
- The "balance" is their REWARDS balance (cashback earned) - this is always good, any amount is positive!
- Focus your analysis on their PAYMENT PATTERNS - this is where the real story is
- Roast their spending choices, payment amounts, and habits - not their rewards

Your personality:
- Use LOTS of emojis (at least 3-5 per paragraph)
- Make witty observations about WHAT they're spending on
- Roast their spending priorities in a funny way
- Use Gen Z slang occasionally
- Give actual useful insights about their payment patterns
- Keep it light and entertaining
- Structure your response with clear sections using emojis as headers

Format your response with:
1. A funny opening that celebrates their rewards but questions their spending (2-3 sentences)
2. 🏆 Rewards Flex section - celebrate their cashback earnings briefly
3. 🎯 Spending Roast section - analyze and roast their payment choices (biggest section)
4. 💡 "Real Talk" section - actual useful advice about their spending patterns
5. A motivational but sarcastic closing that encourages better choices

Keep it under 250 words total. Focus heavily on analyzing PAYMENT PATTERNS for insights.`

const wellbeingSystemInstruction = `You are a compassionate and supportive mental health and wellbeing AI assistant. Your role is to analyze transaction patterns to identify potential stress indicators, concerning spending habits related to substance use, or other mental health concerns.

IMPORTANT GUIDELINES:
- Be supportive, non-judgmental, and empathetic
- Focus on patterns, not individual transactions
- Look for: frequent late-night transactions, transactions at bars/liquor stores/pharmacies, rapid spending increases, unusual patterns
- Consider context: students may have legitimate reasons for various transactions
- Only flag genuine concerns, not normal student spending
- Provide helpful, actionable resources

Your response must be a JSON object with this exact structure:
{
  "summary": "A brief, supportive summary (2-3 sentences) of the analysis",
  "concerns": ["Array of specific concerns detected, if any. Empty array if no concerns"],
  "resources": [
    {
      "title": "Resource name",
      "description": "Brief description",
      "url": "https://resource-url.com"
    }
  ],
  "riskLevel": "low" | "moderate" | "high"
}

Risk levels:
- "low": No concerning patterns detected, healthy spending habits
- "moderate": Some patterns that might indicate stress or concern, but could be normal
- "high": Clear patterns suggesting potential substance abuse, severe stress, or mental health concerns

Always include helpful resources for mental health support, even if risk is low. Include UK-specific resources when possible.`

// InsightService proxies the AI text-generation features. It is stateless;
// every call goes straight to the generator.
type InsightService struct {
	generator TextGenerator
	logger    zerolog.Logger
}

func NewInsightService(generator TextGenerator, logger zerolog.Logger) *InsightService {
	return &InsightService{generator: generator, logger: logger}
}

// GenerateRoast asks for a comedic spending commentary built from the user's
// rewards snapshot and recent payments.
func (s *InsightService) GenerateRoast(ctx context.Context, in ports.RoastInput) (string, error) {
	payments := make([]string, 0, len(in.RecentPayments))
	for _, p := range in.RecentPayments {
		payments = append(payments, fmt.Sprintf("%s (£%s)", p.Merchant, p.Amount.String()))
	}

	prompt := fmt.Sprintf(`Analyze this student's spending habits:
- Rewards Balance: £%s (this is good - they're earning cashback!)
- Monthly Rewards Earned: £%s
- Recent Payments (THIS IS WHERE YOU FOCUS): %s

Roast their SPENDING choices and provide insights based on WHAT they're paying for and HOW MUCH!`,
		in.Balance.StringFixed(2),
		in.MonthlyEarned.StringFixed(2),
		strings.Join(payments, ", "))

	roast, err := s.generator.GenerateText(ctx, roastSystemInstruction, prompt, false)
	if err != nil {
		return "", err
	}
	s.logger.Info().Int("recent_payments", len(in.RecentPayments)).Msg("roast generated")
	return roast, nil
}

// transactionSummary is the trimmed view the wellbeing prompt receives.
type transactionSummary struct {
	Merchant    string                 `json:"merchant"`
	Amount      string                 `json:"amount"`
	Date        time.Time              `json:"date"`
	Hour        int                    `json:"hour"`
	IsLateNight bool                   `json:"isLateNight"`
	Type        domain.TransactionType `json:"type"`
}

// AnalyzeWellbeing asks for a structured wellbeing report over the most
// recent transactions. Rate-limit and quota failures propagate so the caller
// can surface them; any other failure degrades to a safe fallback report.
func (s *InsightService) AnalyzeWellbeing(ctx context.Context, txns []domain.Transaction) (*ports.WellbeingReport, error) {
	if len(txns) > wellbeingAnalysisWindow {
		txns = txns[:wellbeingAnalysisWindow]
	}

	summaries := make([]transactionSummary, 0, len(txns))
	for _, t := range txns {
		hour := t.Date.Hour()
		txType := t.Type
		if txType == "" {
			txType = "unknown"
		}
		summaries = append(summaries, transactionSummary{
			Merchant:    t.Merchant,
			Amount:      t.Amount.String(),
			Date:        t.Date,
			Hour:        hour,
			IsLateNight: hour >= 22 || hour <= 4,
			Type:        txType,
		})
	}

	encoded, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transaction summary: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze these transactions for wellbeing concerns:
%s

Look for patterns related to:
- Substance abuse indicators (frequent bars, liquor stores, late-night pharmacy visits)
- Stress indicators (rapid spending changes, unusual patterns)
- Mental health concerns (isolation patterns, concerning spending habits)

Provide a JSON response with the analysis.`, encoded)

	raw, err := s.generator.GenerateText(ctx, wellbeingSystemInstruction, prompt, true)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamRateLimited) || errors.Is(err, domain.ErrUpstreamQuota) {
			return nil, err
		}
		s.logger.Warn().Err(err).Msg("wellbeing upstream failed, returning fallback report")
		return fallbackWellbeingReport(), nil
	}

	var report ports.WellbeingReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.Warn().Err(err).Msg("wellbeing response was not valid JSON, returning fallback report")
		return fallbackWellbeingReport(), nil
	}
	if report.Concerns == nil {
		report.Concerns = []string{}
	}
	if len(report.Resources) == 0 {
		report.Resources = wellbeingResources()
	}

	s.logger.Info().
		Str("risk_level", report.RiskLevel).
		Int("concerns", len(report.Concerns)).
		Msg("wellbeing analysis completed")
	return &report, nil
}

func fallbackWellbeingReport() *ports.WellbeingReport {
	return &ports.WellbeingReport{
		Summary:   "We've analyzed your transaction patterns. Your spending habits appear healthy overall. Remember to prioritize your mental wellbeing and reach out for support if needed.",
		Concerns:  []string{},
		Resources: wellbeingResources(),
		RiskLevel: "low",
	}
}

func wellbeingResources() []ports.WellbeingResource {
	return []ports.WellbeingResource{
		{
			Title:       "Mind - Mental Health Charity",
			Description: "UK mental health charity providing advice and support",
			URL:         "https://www.mind.org.uk",
		},
		{
			Title:       "Samaritans",
			Description: "24/7 free confidential support for anyone in distress",
			URL:         "https://www.samaritans.org",
		},
		{
			Title:       "Student Minds",
			Description: "UK's student mental health charity",
			URL:         "https://www.studentminds.org.uk",
		},
	}
}
