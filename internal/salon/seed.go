package salon

import (
	"fmt"
	"time"
)

var seedUsers = []User{
	{ID: "user1", Name: "John Doe"},
	{ID: "user2", Name: "Jane Smith"},
	{ID: "user3", Name: "Bob Johnson"},
	{ID: "user4", Name: "Alice Williams"},
	{ID: "user5", Name: "Charlie Brown"},
	{ID: "user6", Name: "Diana Prince"},
}

var seedGroups = []Group{
	{ID: "group1", Name: "Math 201", MemberCount: 45},
	{ID: "group2", Name: "Weekend Hangout", MemberCount: 32},
	{ID: "group3", Name: "Design Geeks", MemberCount: 28},
	{ID: "group4", Name: "Study Session", MemberCount: 15},
}

type seedSalon struct {
	salon        Salon
	age          time.Duration
	idle         time.Duration
	participants int
}

var seedSalons = []seedSalon{
	{salon: Salon{ID: "salon1", GroupID: "group1", Name: "Math 201", Type: SalonTypeVideo}, age: 30 * time.Minute, idle: 5 * time.Minute, participants: 4},
	{salon: Salon{ID: "salon2", GroupID: "group2", Name: "Weekend Hangout", Type: SalonTypeAudio}, age: 45 * time.Minute, idle: 2 * time.Minute, participants: 5},
	{salon: Salon{ID: "salon3", GroupID: "group3", Name: "Design Geeks", Type: SalonTypeVideo}, age: 20 * time.Minute, idle: time.Minute, participants: 6},
}

// Seed loads the demo directory and salons. Participants are assigned by
// rotating through the users so the result is stable between runs.
func (s *Store) Seed() {
	s.mu.Lock()
	now := s.now()
	s.users = append(s.users[:0], seedUsers...)
	s.groups = append(s.groups[:0], seedGroups...)
	s.salons = s.salons[:0]
	s.participants = s.participants[:0]
	s.currentUserID = seedUsers[0].ID

	for i, seed := range seedSalons {
		salon := seed.salon
		salon.CreatedAt = now.Add(-seed.age)
		salon.LastActivityAt = now.Add(-seed.idle)
		salon.IsActive = true

		for n := 0; n < seed.participants && n < len(seedUsers); n++ {
			user := seedUsers[(i+n)%len(seedUsers)]
			s.participants = append(s.participants, &Participant{
				ID:           fmt.Sprintf("participant-%s-%s", salon.ID, user.ID),
				SalonID:      salon.ID,
				UserID:       user.ID,
				UserName:     user.Name,
				UserAvatar:   user.Avatar,
				JoinedAt:     now.Add(-time.Duration(seed.participants-n) * time.Minute),
				AudioEnabled: n%5 != 4,
				VideoEnabled: salon.Type == SalonTypeVideo && n%3 != 2,
			})
			salon.ParticipantCount++
		}
		s.salons = append(s.salons, &salon)
	}
	s.mu.Unlock()

	s.changed()
}
