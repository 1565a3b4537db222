package biz

import (
	"strings"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

// AvailableDemoFunds 演示模式下可查询的基金
var AvailableDemoFunds = []string{"KKR", "Blackstone", "Apollo"}

// DemoReport 按名称（不区分大小写）返回演示数据，不存在时返回 nil。返回值为副本
func DemoReport(fundName string) *model.Report {
	r, ok := demoReports[strings.ToUpper(strings.TrimSpace(fundName))]
	if !ok {
		return nil
	}
	cp := r
	cp.Funds = append([]model.Fund(nil), r.Funds...)
	cp.TeamMembers = append([]model.TeamMember(nil), r.TeamMembers...)
	cp.RecentDeals = append([]model.Deal(nil), r.RecentDeals...)
	return &cp
}

var demoReports = map[string]model.Report{
	"KKR": {
		FundName:         "KKR & Co. Inc.",
		Address:          "9 West 57th Street, New York, NY 10019, United States",
		ContactEmail:     "info@kkr.com",
		InvestmentThesis: "KKR Credit focuses on direct lending and credit solutions across North America and Europe. The firm specializes in senior secured lending, unitranche financing, and opportunistic credit investments. KKR Credit targets middle-market companies with predictable cash flows and strong management teams, providing flexible capital solutions tailored to borrower needs.",
		Funds: []model.Fund{
			{Name: "KKR North America Credit Partners", Strategy: "Direct lending and senior debt", RaisedDate: "2023", Size: "$6.5 billion"},
			{Name: "KKR Credit Opportunities Fund", Strategy: "Opportunistic credit investments", RaisedDate: "2022", Size: "$4.2 billion"},
			{Name: "KKR European Credit Fund", Strategy: "European direct lending", RaisedDate: "2021", Size: "$3.8 billion"},
		},
		TeamMembers: []model.TeamMember{
			{Name: "Chris Sheldon", Position: "Global Head of Credit", Experience: "Leads KKR's global credit platform with over 20 years of credit investment experience. Previously worked at Goldman Sachs."},
			{Name: "Avi Wiesel", Position: "Head of North America Credit", Experience: "Oversees KKR's North American credit investments with extensive experience in direct lending and leveraged finance."},
			{Name: "Nat Zilkha", Position: "Managing Director, Credit", Experience: "Focuses on middle-market direct lending transactions with over 15 years of credit investment experience."},
			{Name: "Alex Dibelius", Position: "Head of European Credit", Experience: "Leads KKR's European credit activities with deep expertise in European middle-market lending."},
			{Name: "Derek Thompson", Position: "Managing Director, Credit Opportunities", Experience: "Specializes in opportunistic credit investments and distressed credit situations with 18+ years of experience."},
		},
		RecentDeals: []model.Deal{
			{Company: "MedTech Solutions", Sector: "Healthcare Technology", Date: "2024-02", DealType: "Senior secured term loan", Amount: "$450 million"},
			{Company: "CloudFirst Software", Sector: "Software", Date: "2023-11", DealType: "Unitranche financing", Amount: "$325 million"},
			{Company: "Industrial Services Group", Sector: "Industrial Services", Date: "2023-09", DealType: "Direct lending facility", Amount: "$280 million"},
			{Company: "Retail Analytics Corp", Sector: "Technology", Date: "2023-06", DealType: "Senior debt financing", Amount: "$200 million"},
			{Company: "Healthcare Partners", Sector: "Healthcare Services", Date: "2023-03", DealType: "Leveraged loan", Amount: "$380 million"},
			{Company: "TechFlow Logistics", Sector: "Transportation", Date: "2022-12", DealType: "Term loan B", Amount: "$165 million"},
			{Company: "Digital Marketing Pro", Sector: "Marketing Services", Date: "2022-09", DealType: "Unitranche credit", Amount: "$125 million"},
			{Company: "Manufacturing Plus", Sector: "Manufacturing", Date: "2022-05", DealType: "Senior secured credit", Amount: "$240 million"},
		},
	},
	"BLACKSTONE": {
		FundName:         "Blackstone Inc.",
		Address:          "345 Park Avenue, New York, NY 10154, United States",
		ContactEmail:     "info@blackstone.com",
		InvestmentThesis: "Blackstone Credit focuses on providing financing solutions to middle-market and large-cap companies through direct lending and opportunistic credit strategies. The firm leverages its global platform and deep sector expertise to structure flexible credit solutions across various industries with emphasis on asset-backed and cash flow-based lending.",
		Funds: []model.Fund{
			{Name: "Blackstone Strategic Credit Fund", Strategy: "Direct lending and senior debt", RaisedDate: "2023", Size: "$8.5 billion"},
			{Name: "Blackstone Opportunistic Credit Fund", Strategy: "Opportunistic and distressed credit", RaisedDate: "2022", Size: "$5.2 billion"},
			{Name: "Blackstone European Credit Fund", Strategy: "European direct lending", RaisedDate: "2021", Size: "$3.8 billion"},
		},
		TeamMembers: []model.TeamMember{
			{Name: "Bennett Goodman", Position: "Global Head of Credit", Experience: "Co-founded Blackstone's credit business and leads global credit investment activities with over 25 years of credit experience."},
			{Name: "Steve Lasota", Position: "Global Head of Direct Lending", Experience: "Oversees Blackstone's direct lending platform with extensive experience in middle-market credit investments and structured finance."},
			{Name: "Dwight Scott", Position: "Head of Credit Origination", Experience: "Leads credit deal sourcing and client relationships with deep expertise in leveraged finance and direct lending."},
			{Name: "Michael Zawadzki", Position: "Managing Director, Credit", Experience: "Focuses on large-cap credit investments and opportunistic credit strategies with 20+ years of experience."},
			{Name: "Craig Farr", Position: "Head of European Credit", Experience: "Leads Blackstone's European credit activities with extensive experience in European leveraged finance markets."},
		},
		RecentDeals: []model.Deal{
			{Company: "Industrial Equipment Corp", Sector: "Industrial Technology", Date: "2024-01", DealType: "Senior secured facility", Amount: "$675 million"},
			{Company: "Restaurant Holdings LLC", Sector: "Restaurants", Date: "2023-10", DealType: "Unitranche financing", Amount: "$425 million"},
			{Company: "Authentication Services", Sector: "Business Services", Date: "2023-07", DealType: "Direct lending facility", Amount: "$320 million"},
			{Company: "Health Foods Co", Sector: "Consumer Goods", Date: "2023-04", DealType: "Term loan facility", Amount: "$285 million"},
			{Company: "Social Tech Platform", Sector: "Technology", Date: "2023-01", DealType: "Senior debt financing", Amount: "$190 million"},
			{Company: "Event Management Group", Sector: "Entertainment", Date: "2022-11", DealType: "Leveraged loan", Amount: "$155 million"},
			{Company: "Analytics Software Inc", Sector: "Software", Date: "2022-08", DealType: "Growth debt facility", Amount: "$220 million"},
			{Company: "HVAC Solutions", Sector: "Industrial", Date: "2022-04", DealType: "Senior secured credit", Amount: "$340 million"},
		},
	},
	"APOLLO": {
		FundName:         "Apollo Global Management, Inc.",
		Address:          "9 West 57th Street, 43rd Floor, New York, NY 10019, United States",
		ContactEmail:     "info@apollo.com",
		InvestmentThesis: "Apollo employs a value-oriented approach across private equity, credit, and real assets. The firm focuses on complex situations and operational transformations, leveraging deep sector expertise and proprietary deal sourcing. Apollo emphasizes downside protection while seeking attractive risk-adjusted returns through active portfolio management.",
		Funds: []model.Fund{
			{Name: "Apollo Investment Fund X", Strategy: "Large-cap buyouts", RaisedDate: "2022", Size: "$25.0 billion"},
			{Name: "Apollo Strategic Fund IV", Strategy: "Opportunistic credit", RaisedDate: "2021", Size: "$20.0 billion"},
			{Name: "Apollo Hybrid Value Fund", Strategy: "Multi-strategy", RaisedDate: "2020", Size: "$5.4 billion"},
		},
		TeamMembers: []model.TeamMember{
			{Name: "Marc Rowan", Position: "Chief Executive Officer", Experience: "Co-founded Apollo in 1990 and became CEO in 2021. Previously worked at Drexel Burnham Lambert with extensive experience in credit and distressed investing."},
			{Name: "Josh Harris", Position: "Co-Founder & Senior Managing Director", Experience: "Co-founded Apollo in 1990 and has over 30 years of private equity and credit experience. Previously worked at Drexel Burnham Lambert."},
			{Name: "Leon Black", Position: "Co-Founder", Experience: "Co-founded Apollo in 1990 and served as CEO until 2021. Pioneer in distressed debt investing with extensive Wall Street experience."},
			{Name: "Scott Kleinman", Position: "Co-President", Experience: "Joined Apollo in 1996 and leads the firm's private equity business with expertise in leveraged buyouts and growth investments."},
			{Name: "Jim Zelter", Position: "Co-President", Experience: "Joined Apollo in 2006 and leads the firm's credit business, one of the largest alternative credit platforms globally."},
		},
		RecentDeals: []model.Deal{
			{Company: "Lumen Technologies", Sector: "Telecommunications", Date: "2023-10", DealType: "Debt Investment", Amount: "$5.0 billion"},
			{Company: "Shutterfly", Sector: "E-commerce", Date: "2023-07", DealType: "Acquisition", Amount: "$2.7 billion"},
			{Company: "Intrado", Sector: "Technology Services", Date: "2023-04", DealType: "Acquisition", Amount: "$2.4 billion"},
			{Company: "Redbird Capital", Sector: "Sports & Entertainment", Date: "2022-11", DealType: "Strategic Partnership", Amount: "$1.8 billion"},
			{Company: "Yahoo", Sector: "Internet & Media", Date: "2022-08", DealType: "Strategic Investment", Amount: "$1.7 billion"},
			{Company: "Tegna Inc.", Sector: "Media", Date: "2022-02", DealType: "Acquisition", Amount: "$8.6 billion"},
			{Company: "Rackspace", Sector: "Cloud Services", Date: "2021-12", DealType: "Take-private", Amount: "$4.3 billion"},
			{Company: "Albertsons", Sector: "Retail", Date: "2021-09", DealType: "Strategic Investment", Amount: "$1.7 billion"},
		},
	},
}
