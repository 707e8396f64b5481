package entities

// SampleFamily returns a four-generation demo family used by "init --seed".
// Each call returns a fresh copy.
func SampleFamily() Document {
	members := []Member{
		{ID: 1, Name: "Robert Johnson", Relationship: "Great-Grandfather", BirthDate: "1925-03-15", DeathDate: "1995-11-20", Location: "New York, USA", Occupation: "Carpenter", Description: "Served in WWII. Loved woodworking.", Tags: []string{"Military", "Craftsman"}, Generation: 0, Side: SidePaternal},
		{ID: 2, Name: "Mary Brown", Relationship: "Great-Grandmother", BirthDate: "1928-07-22", DeathDate: "2005-01-10", Location: "Boston, USA", Occupation: "Nurse", Description: "An avid gardener and a fantastic cook.", Tags: []string{"Healthcare", "Gardening"}, Generation: 0, Side: SidePaternal},
		{ID: 10, Name: "George White", Relationship: "Great-Grandfather", BirthDate: "1922-01-10", DeathDate: "1999-08-03", Location: "London, UK", Occupation: "Accountant", Description: "Immigrated in 1948. Loved jazz music.", Tags: []string{"Immigrant", "Music"}, Generation: 0, Side: SideMaternal},
		{ID: 11, Name: "Helen Davis", Relationship: "Great-Grandmother", BirthDate: "1926-04-05", DeathDate: "2010-12-25", Location: "London, UK", Occupation: "Librarian", Description: "A voracious reader and local historian.", Tags: []string{"Education", "History"}, Generation: 0, Side: SideMaternal},
		{ID: 3, Name: "James Johnson", Relationship: "Grandfather", BirthDate: "1950-05-10", Location: "Chicago, USA", Occupation: "Architect", Description: "Designed several community buildings.", Tags: []string{"Artist", "Entrepreneur"}, Generation: 1, Side: SidePaternal},
		{ID: 4, Name: "Patricia Smith", Relationship: "Grandmother", BirthDate: "1952-09-01", Location: "Chicago, USA", Occupation: "Teacher", Description: "Taught elementary school for 35 years.", Tags: []string{"Education"}, Generation: 1, Side: SidePaternal},
		{ID: 12, Name: "Peter White", Relationship: "Grandfather", BirthDate: "1951-08-18", Location: "Miami, USA", Occupation: "Pilot", Description: "Flew for commercial airlines for 40 years.", Tags: []string{"Traveler", "Aviation"}, Generation: 1, Side: SideMaternal},
		{ID: 13, Name: "Susan Clark", Relationship: "Grandmother", BirthDate: "1955-02-22", Location: "Miami, USA", Occupation: "Realtor", Description: "A successful real estate agent.", Tags: []string{"Entrepreneur"}, Generation: 1, Side: SideMaternal},
		{ID: 5, Name: "Michael Johnson", Relationship: "Father", BirthDate: "1978-11-30", Location: "San Francisco, USA", Occupation: "Software Engineer", Description: "Loves hiking and technology.", Tags: []string{"Tech", "Outdoors"}, Generation: 2, Side: SidePaternal},
		{ID: 6, Name: "Emma White", Relationship: "Mother", BirthDate: "1980-01-20", Location: "San Francisco, USA", Occupation: "Graphic Designer", Description: "Creative spirit with a love for painting.", Tags: []string{"Artist", "Traveler"}, Generation: 2, Side: SideMaternal},
		{ID: 7, Name: "Olivia Johnson", Relationship: "Daughter", BirthDate: "2010-06-15", Location: "San Francisco, USA", Occupation: "Student", Description: "Loves soccer and playing the piano.", Tags: []string{"Music", "Sports"}, Generation: 3, Side: SideEgo},
		{ID: 8, Name: "Leo Johnson", Relationship: "Son", BirthDate: "2012-09-02", Location: "San Francisco, USA", Occupation: "Student", Description: "Enjoys building with LEGOs.", Tags: []string{"Creative"}, Generation: 3, Side: SideEgo},
	}

	married := func(id string, a, b MemberID, status, note string) Relationship {
		return Relationship{ID: id, Members: [2]MemberID{a, b}, Link: LinkSpouse, Type: "Biological", Status: status, Note: note}
	}
	parent := func(id string, p, c MemberID) Relationship {
		return Relationship{ID: id, Members: [2]MemberID{p, c}, Link: LinkParent, Type: "Biological"}
	}

	connections := []Relationship{
		married("c1", 1, 2, "Married", "Married for 50 years."),
		married("c10", 10, 11, "Married", "Met in London after the war."),
		married("c2", 3, 4, "Married", "Met in college."),
		married("c12", 12, 13, "Divorced", "Divorced in 2005."),
		married("c3", 5, 6, "Married", "Married in 2008 in Napa Valley."),
		parent("c4", 1, 3),
		parent("c5", 2, 3),
		parent("c6", 3, 5),
		parent("c7", 4, 5),
		parent("c8", 5, 7),
		parent("c9", 6, 7),
		parent("c15", 5, 8),
		parent("c16", 6, 8),
		parent("c11", 10, 12),
		parent("c18", 11, 12),
		parent("c13", 12, 6),
		parent("c14", 13, 6),
		{ID: "c17", Members: [2]MemberID{7, 8}, Link: LinkSibling, Type: "Biological"},
	}

	return Document{Members: members, Connections: connections}
}
