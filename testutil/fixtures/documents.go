package fixtures

// CSVDocument is the canonical data in the file layout of csvsource, including
// a reader with an explicit card number and the Czech row tags.
const CSVDocument = `Library:City Library
type,title,author,year,isbn,first_name,last_name,card_number
book,Dune,Herbert,1965,9780441013593,,,
reader,,,,,Jan,Novak,
kniha,The Hobbit,Tolkien,1937,9780547928227,,,
ctenar,,,,,Eva,Svobodova,4711
`

// LegacyCSVDocument uses the Czech metadata prefix and seven columns per row.
const LegacyCSVDocument = `Knihovna:Mestska knihovna
typ,nazev,autor,rok_vydani,isbn,jmeno,prijmeni
kniha,Dune,Herbert,unknown,9780441013593,,
ctenar,,,,,Jan,Novak
`

// JSONDocument is the canonical data in the document layout of jsonsource.
const JSONDocument = `{
  "library": "City Library",
  "records": [
    {"type": "book", "title": "Dune", "author": "Herbert", "year": "1965", "isbn": "9780441013593"},
    {"type": "reader", "firstName": "Jan", "lastName": "Novak"},
    {"type": "book", "title": "The Hobbit", "author": "Tolkien", "year": "1937", "isbn": "9780547928227"},
    {"type": "reader", "firstName": "Eva", "lastName": "Svobodova", "cardNumber": "4711"}
  ]
}`

// ExplicitCardNumber is the card number of the second reader in CSVDocument and JSONDocument.
const ExplicitCardNumber = 4711
