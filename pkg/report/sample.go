package report

import "github.com/matzehuels/influencegraph/pkg/graph"

// Sample returns the built-in demo report.
func Sample() Report {
	const who = "Lee Jae-myung"
	return Report{
		Title:     "Lee Jae-myung의 정치·경제·기업 연결성 분석",
		TimeRange: "2018–2025",
		Chains: []Chain{
			{
				Politician: who,
				Policy:     "None directly linked",
				Sector:     "Energy/Steel",
				Companies:  []string{"Korea Electric Power Corporation (KEPCO)", "POSCO"},
				Impact:     "Lee Jae-myung's spouse holds stocks in KEPCO and POSCO, indicating indirect financial ties to the energy and steel sectors.",
				Evidence: []graph.Evidence{
					{Title: "Lee Jae-myung 2023 Financial Disclosure Report", URL: "https://www.ethics.go.kr/disclosure/2023/lee_jae_myung.pdf"},
				},
			},
			{
				Politician: who,
				Policy:     "Regional development projects",
				Sector:     "Construction",
				Companies:  []string{"Seongnam Development Co."},
				Impact:     "Lee Jae-myung's brother owns a construction company that received Gyeonggi Province contracts, though no wrongdoing was proven.",
				Evidence: []graph.Evidence{
					{Title: "Gyeonggi Province Property Registry Database", URL: "https://www.gg.go.kr/property/lee_family_registrations"},
					{Title: "KFTC Investigation Summary: Seongnam Development Co.", URL: "https://www.ftc.go.kr/case/2020/sd_co_dismissal.pdf"},
				},
			},
			{
				Politician: who,
				Policy:     "Biotech R&D subsidies",
				Sector:     "Biopharmaceuticals",
				Companies:  []string{"Celltrion Healthcare"},
				Impact:     "Lee Jae-myung's campaign had indirect ties to a lobbyist linked to Celltrion, coinciding with biotech stock surges after his R&D subsidy advocacy.",
				Evidence: []graph.Evidence{
					{Title: "Newstapa: Lee Jae-myung’s Bio-Pharma Ties", URL: "https://www.newstapa.org/article/lee-celltrion"},
				},
			},
			{
				Politician: who,
				Policy:     "Regional development projects",
				Sector:     "Construction/Consulting",
				Companies:  []string{"SK Group"},
				Impact:     "Lee Jae-myung's former aide founded a consulting firm that advised SK Group on Gyeonggi Province projects.",
				Evidence: []graph.Evidence{
					{Title: "KBS Special Report: PolicyLink and SK Group", URL: "https://news.kbs.co.kr/politics/policylink_2023"},
				},
			},
			{
				Politician: who,
				Policy:     "Universal Basic Income (UBI) pilot",
				Sector:     "Retail/SMEs",
				Companies:  []string{"Local SMEs/Retail"},
				Impact:     "Lee Jae-myung's UBI pilot in Gyeonggi Province increased local consumption and retail sales.",
				Evidence: []graph.Evidence{
					{Title: "(사진추가) 이재명 “기본소득은 최소한의 사회적안전망…코로나 위기로...", URL: "https://gnews.gg.go.kr/briefing/brief_gongbo_view.do?BS_CODE=S017&number=45701"},
				},
			},
			{
				Politician: who,
				Policy:     "Regional development projects",
				Sector:     "Construction",
				Companies:  []string{"동신건설 (025950)"},
				Impact:     "Lee Jae-myung's regional development policies were linked to stock price increases in 동신건설, a construction firm.",
				Evidence: []graph.Evidence{
					{Title: "이재명 관련주, 이재명 테마주 한 장으로 알아보기", URL: "https://jjeongddol.tistory.com/54"},
				},
			},
		},
		Notes: "Some connections are indirect or speculative (e.g., Celltrion stock surge timing). No direct evidence of policy quid pro quo. Financial disclosures and news investigations provide partial insights but lack comprehensive corporate filings or government procurement records.",
	}
}
