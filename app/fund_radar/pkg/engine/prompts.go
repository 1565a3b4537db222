package engine

import "fmt"

const enhanceSystemPrompt = "You are a financial analyst specialising in private credit markets, fund analysis and data extraction. " +
	"You connect scattered facts, recover contact details and produce thorough analytical notes."

const enhancePromptTpl = `Analyse the research material collected about "%s" and turn it into a dense, well organised analytical brief.

RESEARCH DATA:
%s

Work through the material and:
1. Pull out every email address, phone number, LinkedIn profile and office address.
2. Link team members to their roles, education, previous employers and deal involvement.
3. Extract fund details: closing dates, final and target sizes, vintage years, fund numbers.
4. Extract transaction details: amounts, currencies, lead arrangers, co-investors, structures, use of proceeds.
5. Describe competitive positioning, market share and differentiators.
6. Extract performance figures: AUM, capital deployed, number of investments, returns, sector and geographic focus.
7. Note regulatory filings, partnerships and notable relationships.
8. Separate private credit activity from the firm's other business lines.

Cross-check facts between sources and keep exact figures and dates. Where information is missing, say so explicitly
(for example "Not publicly disclosed") instead of guessing.

Write the result as detailed text with one section per topic.`

const structureSystemPrompt = "You are a financial analyst specialising in private credit research. " +
	"You build structured fund reports and always answer with a single valid JSON object."

const structurePromptTpl = `Using the research below about the fund manager "%s", build a structured report focused on its private credit activity.

Research Data:
%s

Answer with one JSON object of this shape (every value is a string or an array of strings):
{
  "fundName": "Official firm name",
  "address": "Full headquarters address",
  "contactEmail": "Main contact email",
  "website": "Official website URL",
  "phone": "Main phone number",
  "investmentThesis": "Private credit strategy and approach in 3-4 sentences",
  "aum": "Total assets under management",
  "foundedYear": "Year founded",
  "headquarters": "Primary headquarters city",
  "officeLocations": ["Office locations"],
  "funds": [
    {
      "name": "Fund name",
      "strategy": "Investment strategy",
      "raisedDate": "Closing date",
      "size": "Final fund size",
      "targetSize": "Target size",
      "status": "closed, raising, ...",
      "vintageYear": "Vintage year",
      "closingDate": "Final closing date",
      "fundNumber": "Fund sequence number"
    }
  ],
  "teamMembers": [
    {
      "name": "Full name",
      "position": "Title",
      "email": "Email address",
      "phone": "Direct phone",
      "linkedin": "LinkedIn URL",
      "experience": "Background and experience",
      "education": "Education",
      "previousCompanies": ["Previous employers"],
      "yearsAtFirm": "Years at the firm"
    }
  ],
  "recentDeals": [
    {
      "company": "Borrower or target company",
      "sector": "Sector",
      "date": "Transaction date",
      "dealType": "Facility or deal type",
      "amount": "Amount",
      "currency": "Currency",
      "description": "Short description",
      "leadArrangers": ["Lead arrangers"],
      "coInvestors": ["Co-investors"],
      "use_of_proceeds": "Use of proceeds"
    }
  ],
  "competitiveAnalysis": {
    "mainCompetitors": ["Competitors"],
    "marketPosition": "Market position",
    "differentiators": ["Differentiators"]
  },
  "performanceMetrics": {
    "totalDeployed": "Total capital deployed",
    "numberOfInvestments": "Number of investments",
    "averageDealSize": "Average deal size",
    "geographicFocus": ["Regions"],
    "sectorFocus": ["Sectors"]
  }
}

Requirements:
- Use every fact in the research data; prefer exact dates, amounts and contact details.
- List 10-20 team members when available, credit professionals first.
- List 15-25 transactions from recent years and classify each deal type (direct lending, unitranche, senior debt, mezzanine, distressed, equity, ...).
- Include all funds managed by the firm, marking credit strategies.
- When an email or phone number cannot be found write "Not publicly available".

Return only the JSON object, no additional text.`

func buildEnhancePrompt(fundName, rawData string) string {
	return fmt.Sprintf(enhancePromptTpl, fundName, rawData)
}

func buildStructurePrompt(fundName, research string) string {
	return fmt.Sprintf(structurePromptTpl, fundName, research)
}
